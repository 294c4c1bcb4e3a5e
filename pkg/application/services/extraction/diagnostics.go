package extraction

// Diagnostics describes how a sheet was read, so an empty extraction caused
// by an unrecognized header can be told apart from a genuinely empty sheet
type Diagnostics struct {
	HeaderFound    bool    `json:"headerFound"`
	HeaderRow      int     `json:"headerRow"`
	MissingColumns []Field `json:"missingColumns,omitempty"`
	DroppedRows    int     `json:"droppedRows"`
	Entries        int     `json:"entries"`
}

func headerNotFound() Diagnostics {
	return Diagnostics{HeaderRow: -1}
}

package entities

import "strings"

// Department labels
const (
	DepartmentFrozen      = "Congelados"
	DepartmentChilled     = "Refrigerados"
	DepartmentDry         = "Secos"
	DepartmentPraca       = "PRAÇA"
	DepartmentConsumables = "Consumíveis"
	DepartmentHotKitchen  = "Cozinha Quente"
	DepartmentOther       = "Outros"
	UnknownStorageClass   = "N/A"
)

// storageClassAliases maps raw storage classes found on inventory exports to
// a department label. Matching is exact.
var storageClassAliases = map[string]string{
	"C1":                  DepartmentFrozen,
	"C2":                  DepartmentFrozen,
	"C3":                  DepartmentFrozen,
	"C4":                  DepartmentFrozen,
	"P":                   DepartmentPraca,
	"PRACA":               DepartmentPraca,
	"F&V, Pão & Iogurtes": DepartmentPraca,
	"PRAÇA":               DepartmentPraca,
	"R":                   DepartmentChilled,
	"R4":                  DepartmentChilled,
	"S":                   DepartmentDry,
	"Seco":                DepartmentDry,
	"Secos":               DepartmentDry,
	"AMB.":                DepartmentDry,
	"Secos / Consumíveis": DepartmentDry,
	"CLI":                 DepartmentConsumables,
}

type classPrefix struct {
	Prefix     string
	Department string
}

// departmentPrefixes is evaluated in order; the first prefix the class starts
// with wins
var departmentPrefixes = []classPrefix{
	{"CF", DepartmentFrozen},
	{"RF", DepartmentChilled},
	{"SC", DepartmentDry},
	{"PR", DepartmentPraca},
	{"CN", DepartmentConsumables},
	{"CQ", DepartmentHotKitchen},
	{"CF GERAL", DepartmentFrozen},
	{"RF GERAL", DepartmentChilled},
	{"SC GERAL", DepartmentDry},
}

// NormalizeStorageClass resolves a raw storage class through the alias
// table, returning the input unchanged when it has no alias
func NormalizeStorageClass(raw string) string {
	if dept, ok := storageClassAliases[raw]; ok {
		return dept
	}
	return raw
}

// ResolveDepartment maps a storage class to a department label by prefix.
// Unmatched classes are returned as-is; an empty class yields "Outros".
func ResolveDepartment(storageClass string) string {
	for _, p := range departmentPrefixes {
		if strings.HasPrefix(storageClass, p.Prefix) {
			return p.Department
		}
	}
	if storageClass == "" {
		return DepartmentOther
	}
	return storageClass
}

// Departments lists the department labels offered to report consumers
func Departments() []string {
	return []string{
		DepartmentPraca,
		DepartmentFrozen,
		DepartmentChilled,
		DepartmentDry,
		DepartmentConsumables,
		DepartmentHotKitchen,
	}
}

package metaobj

import (
	"encoding/json"
	"sort"

	"github.com/Chic-lang/Chic-sub010/pkg/mir"
)

// ReflectVersion is the current reflection-table schema version.
const ReflectVersion = 2

// ReflectMember is one field/view of a reflected type.
type ReflectMember struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset int    `json:"offset"`
}

// ReflectType is one public type's reflection record.
type ReflectType struct {
	Name    string          `json:"name"`
	Kind    string          `json:"kind"` // struct | enum | union | class
	Size    int             `json:"size"`
	Align   int             `json:"align"`
	Members []ReflectMember `json:"members,omitempty"`
	Bases   []string        `json:"bases,omitempty"`
}

// ReflectTables is the `.chic.reflect` JSON document.
type ReflectTables struct {
	Version    int           `json:"version"`
	Types      []ReflectType `json:"types"`
	Attributes []string      `json:"attributes,omitempty"`
}

// BuildReflect serializes the module's public type layouts into the
// reflection JSON payload, sorted by name for reproducible bytes.
func BuildReflect(mod *mir.MirModule, caches *Caches) ([]byte, error) {
	tables := ReflectTables{Version: ReflectVersion}
	if mod.Layouts != nil {
		for name, l := range mod.Layouts.Structs {
			tables.Types = append(tables.Types, reflectStruct(name, "struct", &l.Fields, l.Size, l.Align, nil, caches))
		}
		for name, l := range mod.Layouts.Classes {
			tables.Types = append(tables.Types, reflectStruct(name, "class", &l.Fields, l.Size, l.Align, l.Bases, caches))
		}
		for name, l := range mod.Layouts.Enums {
			t := ReflectType{Name: name, Kind: "enum", Size: l.Size, Align: l.Align}
			for _, v := range l.Variants {
				t.Members = append(t.Members, ReflectMember{Name: v.Name, Type: "variant", Offset: int(v.Discriminant)})
			}
			tables.Types = append(tables.Types, t)
		}
		for name, l := range mod.Layouts.Unions {
			t := ReflectType{Name: name, Kind: "union", Size: l.Size, Align: l.Align}
			for _, v := range l.Views {
				t.Members = append(t.Members, ReflectMember{Name: v.Name, Type: v.Ty.String(), Offset: 0})
			}
			tables.Types = append(tables.Types, t)
		}
	}
	sort.Slice(tables.Types, func(i, j int) bool { return tables.Types[i].Name < tables.Types[j].Name })
	return json.Marshal(&tables)
}

func reflectStruct(name, kind string, fields *[]mir.FieldLayout, size, align int, bases []string, caches *Caches) ReflectType {
	t := ReflectType{Name: name, Kind: kind, Size: size, Align: align, Bases: bases}
	caches.Type(name, func() string { return name })
	for _, f := range *fields {
		t.Members = append(t.Members, ReflectMember{Name: f.Name, Type: f.Ty.String(), Offset: f.Offset})
	}
	return t
}

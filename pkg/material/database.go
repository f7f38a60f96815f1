package material

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// bowingSection is the reserved top-level key holding alloy bowing
// parameters in the serialized database.
const bowingSection = "__bowing_parameters"

// bowingKey identifies the ordered endpoint pair of a bowing parameter set.
type bowingKey struct {
	A, B string
}

func (k bowingKey) String() string { return k.A + ":" + k.B }

func parseBowingKey(s string) (bowingKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return bowingKey{}, fmt.Errorf("malformed bowing parameter key %q", s)
	}
	return bowingKey{A: parts[0], B: parts[1]}, nil
}

// Database holds named material property sets plus the bowing parameters
// used to interpolate binary alloys.
type Database struct {
	materials map[string]Properties
	bowing    map[bowingKey]Properties
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{
		materials: map[string]Properties{},
		bowing:    map[bowingKey]Properties{},
	}
}

// LoadDatabase reads a materials database from a JSON file.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Material: path}
		}
		return nil, fmt.Errorf("failed to read materials database: %w", err)
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("materials database %s: %w", path, err)
	}

	db := NewDatabase()
	for name, entry := range raw {
		if name == bowingSection {
			for keyStr, rawProps := range entry {
				key, err := parseBowingKey(keyStr)
				if err != nil {
					return nil, fmt.Errorf("materials database %s: %w", path, err)
				}
				props, err := decodeProperties(rawProps)
				if err != nil {
					return nil, fmt.Errorf("materials database %s: bowing %s: %w", path, keyStr, err)
				}
				db.bowing[key] = props
			}
			continue
		}

		entryRaw, err := json.Marshal(entry)
		if err != nil {
			return nil, err
		}
		props, err := decodeProperties(entryRaw)
		if err != nil {
			return nil, fmt.Errorf("materials database %s: material %s: %w", path, name, err)
		}
		db.materials[name] = props
	}
	return db, nil
}

// Save writes the database to a JSON file.
func (db *Database) Save(path string) error {
	out := map[string]json.RawMessage{}
	for name, props := range db.materials {
		raw, err := encodeProperties(props)
		if err != nil {
			return err
		}
		out[name] = raw
	}

	if len(db.bowing) > 0 {
		bow := map[string]json.RawMessage{}
		for key, props := range db.bowing {
			raw, err := encodeProperties(props)
			if err != nil {
				return err
			}
			bow[key.String()] = raw
		}
		raw, err := json.Marshal(bow)
		if err != nil {
			return err
		}
		out[bowingSection] = raw
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode materials database: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write materials database: %w", err)
	}
	return nil
}

// Add registers a material. Metals and dielectrics default to an electron
// mass of 1 when none is given.
func (db *Database) Add(name string, kind Kind, values map[string]float64) {
	props := Properties{Kind: kind, Values: map[string]float64{}}
	for k, v := range values {
		props.Values[k] = v
	}
	if kind == Metal || kind == Dielectric {
		if _, ok := props.Values[PropElectronMass]; !ok {
			props.Values[PropElectronMass] = 1
		}
	}
	db.materials[name] = props
}

// SetBowing registers the bowing parameters for the alloy of two endpoint
// materials.
func (db *Database) SetBowing(nameA, nameB string, kind Kind, values map[string]float64) {
	props := Properties{Kind: kind, Values: map[string]float64{}}
	for k, v := range values {
		props.Values[k] = v
	}
	db.bowing[bowingKey{A: nameA, B: nameB}] = props
}

// Names returns the registered material names, sorted.
func (db *Database) Names() []string {
	names := make([]string, 0, len(db.materials))
	for name := range db.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered directly (alloys resolvable via
// Find do not count).
func (db *Database) Has(name string) bool {
	_, ok := db.materials[name]
	return ok
}

// Find retrieves a material by name with energies in meV.
func (db *Database) Find(name string) (*Material, error) {
	return db.FindWithUnit(name, "")
}

// FindWithUnit retrieves a material by name, returning band energies in the
// given unit. If the name is not registered directly, an attempt is made to
// synthesize it as a binary alloy of known endpoints.
func (db *Database) FindWithUnit(name, eunit string) (*Material, error) {
	if props, ok := db.materials[name]; ok {
		return newMaterial(name, props.Clone(), eunit)
	}

	props, err := db.resolveAlloy(name)
	if err != nil {
		return nil, err
	}
	return newMaterial(name, props, eunit)
}

func decodeProperties(raw json.RawMessage) (Properties, error) {
	var entry map[string]any
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Properties{}, err
	}

	props := Properties{Values: map[string]float64{}}
	for key, v := range entry {
		if key == "type" {
			kind, ok := v.(string)
			if !ok {
				return Properties{}, fmt.Errorf("material type must be a string, got %T", v)
			}
			props.Kind = Kind(kind)
			continue
		}
		f, ok := v.(float64)
		if !ok {
			return Properties{}, fmt.Errorf("property %q must be numeric, got %T", key, v)
		}
		props.Values[key] = f
	}
	return props, nil
}

func encodeProperties(props Properties) (json.RawMessage, error) {
	entry := make(map[string]any, len(props.Values)+1)
	entry["type"] = string(props.Kind)
	for k, v := range props.Values {
		entry[k] = v
	}
	return json.Marshal(entry)
}

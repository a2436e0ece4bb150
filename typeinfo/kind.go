package typeinfo

import "fmt"

// Kind classifies a type for the codec. Every kind but Composite is
// built in: its values are decoded directly from a document value.
type Kind int

const (
	Composite Kind = iota
	Bool
	Int
	Uint
	Float
	String
	Bytes
	Time
	Duration
	UUID
	Decimal
	Text
	List
	Map
	Any
)

var kindNames = map[Kind]string{
	Composite: "composite",
	Bool:      "bool",
	Int:       "int",
	Uint:      "uint",
	Float:     "float",
	String:    "string",
	Bytes:     "bytes",
	Time:      "time",
	Duration:  "duration",
	UUID:      "uuid",
	Decimal:   "decimal",
	Text:      "text",
	List:      "list",
	Map:       "map",
	Any:       "any",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

func (k Kind) BuiltIn() bool {
	return k != Composite
}

func Kinds() []Kind {
	return []Kind{Composite, Bool, Int, Uint, Float, String, Bytes, Time, Duration, UUID, Decimal, Text, List, Map, Any}
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Composite, fmt.Errorf("unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, err := ParseKind(string(d))
	if err != nil {
		return err
	}
	*k = kk
	return nil
}

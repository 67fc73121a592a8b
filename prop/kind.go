package prop

import "fmt"

// Kind tags which concrete encoding a property uses. It is fixed for
// the lifetime of a node.
type Kind int

const (
	KindNone Kind = iota
	KindUnknown
	KindBool
	KindInt32
	KindFloat
	KindDouble
	KindCombo
	KindArray
	KindDynArray
	KindHandle
	KindObject
	KindTweakDBID
	KindCName
	KindNodeRef
)

func (k Kind) String() string {
	d, err := k.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindNone:
		return []byte("None"), nil
	case KindUnknown:
		return []byte("Unknown"), nil
	case KindBool:
		return []byte("Bool"), nil
	case KindInt32:
		return []byte("Int32"), nil
	case KindFloat:
		return []byte("Float"), nil
	case KindDouble:
		return []byte("Double"), nil
	case KindCombo:
		return []byte("Combo"), nil
	case KindArray:
		return []byte("Array"), nil
	case KindDynArray:
		return []byte("DynArray"), nil
	case KindHandle:
		return []byte("Handle"), nil
	case KindObject:
		return []byte("Object"), nil
	case KindTweakDBID:
		return []byte("TweakDBID"), nil
	case KindCName:
		return []byte("CName"), nil
	case KindNodeRef:
		return []byte("NodeRef"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a kind>", k)
	}
}

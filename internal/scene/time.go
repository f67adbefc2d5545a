package scene

// TimeMode enumerates the standard timeline frame-rate modes. Backends that
// run at a non-standard rate use TimeModeCustom plus CustomFrameRate.
type TimeMode int

const (
	TimeModeCustom TimeMode = iota
	TimeModeFrames24
	TimeModePAL25
	TimeModeFrames30
	TimeModeNTSC30
	TimeModeFrames48
	TimeModeFrames50
	TimeModeFrames60
	TimeModeFrames100
	TimeModeFrames120
	TimeModeFrames1000
)

// FrameRate returns the frames-per-second of a standard mode, or 0 for
// TimeModeCustom (the scene's custom rate applies instead).
func (m TimeMode) FrameRate() float64 {
	switch m {
	case TimeModeFrames24:
		return 24
	case TimeModePAL25:
		return 25
	case TimeModeFrames30:
		return 30
	case TimeModeNTSC30:
		return 29.97
	case TimeModeFrames48:
		return 48
	case TimeModeFrames50:
		return 50
	case TimeModeFrames60:
		return 60
	case TimeModeFrames100:
		return 100
	case TimeModeFrames120:
		return 120
	case TimeModeFrames1000:
		return 1000
	default:
		return 0
	}
}

// PropertyType is the declared type of a scene property.
type PropertyType int

const (
	TypeUndefined PropertyType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeDouble
	TypeDouble2
	TypeDouble3
	TypeDouble4
	TypeString
	TypeEnum
)

func (t PropertyType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeDouble2:
		return "double2"
	case TypeDouble3:
		return "double3"
	case TypeDouble4:
		return "double4"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "undefined"
	}
}

package minirb

import "strconv"

// FormatValue renders a value the way puts and the REPL display it:
// numbers in plain decimal, strings raw, booleans as true/false, null as
// nil, and callables as opaque tags.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNull:
		return "nil"
	case VTNum:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTFun:
		return "<function " + v.Data.(*FunctionDefinition).Name + ">"
	case VTBuiltin:
		return "<builtin " + v.Data.(*Builtin).Name + ">"
	}
	return "<unknown>"
}

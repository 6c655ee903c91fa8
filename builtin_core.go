package minirb

import "fmt"

// ---- core built-ins ----------------------------------------------------

func registerCoreBuiltins(ip *Interpreter) {
	// puts(args...) -> Null
	// Prints each argument's textual rendering on its own line.
	ip.RegisterBuiltin("puts", func(ip *Interpreter, args []Value) (Value, error) {
		for _, a := range args {
			if _, err := fmt.Fprintln(ip.Out, FormatValue(a)); err != nil {
				return Null, err
			}
		}
		return Null, nil
	})

	// gets() -> Str | Null
	// Reads one line from the input stream; Null at end of input.
	ip.RegisterBuiltin("gets", func(ip *Interpreter, _ []Value) (Value, error) {
		line, ok := ip.In.ReadLine()
		if !ok {
			return Null, nil
		}
		return Str(line), nil
	})
}

// Package flagx lets several independent flag sets share one command line.
// Each loader keeps only the flags it owns and parses them on its own,
// so an unknown flag for one loader is never an error for another.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments whose flag name is in names, together with
// the value that follows a bare flag. Both "-o out" and "-o=out" forms are
// recognized. The result is never nil.
func FilterArgs(args []string, names []string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if known[name] {
				kept = append(kept, arg)
			}
			continue
		}

		if !known[arg] {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			kept = append(kept, args[i])
		}
	}
	return kept
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or an empty string. When both are given the last one wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (shorthand)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}

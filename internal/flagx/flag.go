// Package flagx lets several configuration stages read the same command line
// without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the allowed flags (and their values) from args.
// Both "-f value" and "-f=value" forms are recognised; a following token that
// starts with "-" is never taken as a value. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlag returns the JSON config path given via -c or -config, or "".
func JsonConfigFlag(args []string) string {
	return pathFlag(args, "c", "config")
}

// EnvFileFlag returns the dotenv file path given via -env-file, or "".
func EnvFileFlag(args []string) string {
	return pathFlag(args, "", "env-file")
}

// pathFlag parses a single string flag that may have a short and a long name.
// When both are present the last occurrence wins.
func pathFlag(args []string, short, long string) string {
	names := []string{"-" + long}
	if short != "" {
		names = append(names, "-"+short)
	}

	var value string
	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&value, long, "", "path for "+long)
	if short != "" {
		fs.StringVar(&value, short, "", "path for "+long+" (short)")
	}
	_ = fs.Parse(FilterArgs(args, names))

	return value
}

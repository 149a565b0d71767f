package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// OptionType defines the type of value an option expects
type OptionType int

const (
	OptionTypeBool OptionType = iota
	OptionTypeString
	OptionTypeInt
	OptionTypeList
)

// OptionDef defines a command-line option
type OptionDef struct {
	Long        string     // Long option name (without --)
	Short       string     // Short option name (without -)
	Type        OptionType // Type of value expected
	Description string     // Help description
	Default     string     // Default value
}

// ParsedOptions holds the parsed command-line options
type ParsedOptions struct {
	values        map[string]string
	lists         map[string][]string
	args          []string
	defs          map[string]*OptionDef
	shortMap      map[string]string // Maps short options to long options
	explicitlySet map[string]bool   // Tracks which options were explicitly set
}

// NewParsedOptions creates a new options parser
func NewParsedOptions() *ParsedOptions {
	return &ParsedOptions{
		values:        make(map[string]string),
		lists:         make(map[string][]string),
		args:          []string{},
		defs:          make(map[string]*OptionDef),
		shortMap:      make(map[string]string),
		explicitlySet: make(map[string]bool),
	}
}

// DefineOption defines a command-line option
func (p *ParsedOptions) DefineOption(long, short string, optType OptionType, defaultValue, description string) {
	p.defs[long] = &OptionDef{
		Long:        long,
		Short:       short,
		Type:        optType,
		Description: description,
		Default:     defaultValue,
	}
	if short != "" {
		p.shortMap[short] = long
	}
	if defaultValue != "" {
		p.values[long] = defaultValue
	}
}

// Parse parses command-line arguments. "--" ends option parsing and a lone
// "-" is positional.
func (p *ParsedOptions) Parse(args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			p.args = append(p.args, args[i+1:]...)
			return nil
		case strings.HasPrefix(arg, "--"):
			consumed, err := p.parseLongOption(arg, args[i+1:])
			if err != nil {
				return err
			}
			i += consumed
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			consumed, err := p.parseShortOptions(arg, args[i+1:])
			if err != nil {
				return err
			}
			i += consumed
		default:
			p.args = append(p.args, arg)
		}
	}
	return nil
}

// parseLongOption parses --option, --option=value or --option value and
// returns how many following arguments it consumed
func (p *ParsedOptions) parseLongOption(arg string, rest []string) (int, error) {
	optName := strings.TrimPrefix(arg, "--")
	var optValue string
	hasValue := false

	if equalPos := strings.Index(optName, "="); equalPos != -1 {
		optValue = optName[equalPos+1:]
		optName = optName[:equalPos]
		hasValue = true
	}

	def, exists := p.defs[optName]
	if !exists {
		return 0, fmt.Errorf("unknown option: --%s", optName)
	}

	if def.Type == OptionTypeBool {
		if !hasValue {
			p.set(def, "true")
			return 0, nil
		}
		switch optValue {
		case "true", "1":
			p.set(def, "true")
		case "false", "0":
			p.set(def, "false")
		default:
			return 0, fmt.Errorf("invalid boolean value for --%s: %s", optName, optValue)
		}
		return 0, nil
	}

	consumed := 0
	if !hasValue {
		if len(rest) == 0 {
			return 0, fmt.Errorf("option --%s requires a value", optName)
		}
		optValue = rest[0]
		consumed = 1
	}

	if err := p.setValue(def, optValue); err != nil {
		return 0, err
	}
	return consumed, nil
}

// parseShortOptions parses short option(s) (-o value, -ovalue, -vvv)
func (p *ParsedOptions) parseShortOptions(arg string, rest []string) (int, error) {
	shortOpts := strings.TrimPrefix(arg, "-")

	for idx, r := range shortOpts {
		short := string(r)
		longOpt, exists := p.shortMap[short]
		if !exists {
			return 0, fmt.Errorf("unknown option: -%s", short)
		}
		def := p.defs[longOpt]

		switch def.Type {
		case OptionTypeBool:
			p.set(def, "true")

		case OptionTypeInt:
			// Repetition counts: -vvv is level 3
			count := 1
			if p.explicitlySet[longOpt] {
				count = p.GetInt(longOpt) + 1
			}
			p.set(def, strconv.Itoa(count))

		case OptionTypeString, OptionTypeList:
			// Value is the remainder of this argument or the next argument
			if remainder := shortOpts[idx+len(short):]; remainder != "" {
				return 0, p.setValue(def, remainder)
			}
			if len(rest) == 0 {
				return 0, fmt.Errorf("option -%s requires a value", short)
			}
			return 1, p.setValue(def, rest[0])
		}
	}

	return 0, nil
}

func (p *ParsedOptions) set(def *OptionDef, value string) {
	p.values[def.Long] = value
	p.explicitlySet[def.Long] = true
}

func (p *ParsedOptions) setValue(def *OptionDef, value string) error {
	switch def.Type {
	case OptionTypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("invalid integer value for --%s: %s", def.Long, value)
		}
	case OptionTypeList:
		p.lists[def.Long] = append(p.lists[def.Long], value)
		p.explicitlySet[def.Long] = true
		return nil
	}
	p.set(def, value)
	return nil
}

// GetString returns a string option value
func (p *ParsedOptions) GetString(option string) string {
	return p.values[option]
}

// GetInt returns an integer option value
func (p *ParsedOptions) GetInt(option string) int {
	if val, exists := p.values[option]; exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return 0
}

// GetBool returns a boolean option value
func (p *ParsedOptions) GetBool(option string) bool {
	return p.values[option] == "true"
}

// GetList returns every value given for a list option, in order
func (p *ParsedOptions) GetList(option string) []string {
	return p.lists[option]
}

// IsSet returns true if an option was explicitly set
func (p *ParsedOptions) IsSet(option string) bool {
	return p.explicitlySet[option]
}

// GetArgs returns non-option arguments
func (p *ParsedOptions) GetArgs() []string {
	return p.args
}

// WriteOptionHelp lists the defined options, sorted by long name
func (p *ParsedOptions) WriteOptionHelp(w io.Writer) {
	names := make([]string, 0, len(p.defs))
	for name := range p.defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := p.defs[name]
		var shortOpt string
		if def.Short != "" {
			shortOpt = fmt.Sprintf("-%s, ", def.Short)
		}

		var valueDesc string
		switch def.Type {
		case OptionTypeString, OptionTypeList:
			valueDesc = "=VALUE"
		case OptionTypeInt:
			valueDesc = "=N"
		}

		fmt.Fprintf(w, "  %s--%s%s\n", shortOpt, def.Long, valueDesc)
		fmt.Fprintf(w, "        %s\n", def.Description)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
	"unicode"
)

const (
	goScriptsDir  = "internal/scripts"
	luaScriptsDir = "scripts"
)

var goTmpl = template.Must(template.New("go").Parse(`package scripts

import (
	"planegame/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type {{.Name}} struct {
	engine.BaseScript
	Speed float32
}

func (s *{{.Name}}) TypeName() string { return "{{.Name}}" }

func (s *{{.Name}}) SetDefaults() {
	s.Speed = 1
}

func (s *{{.Name}}) Update() {
	t := s.Transform()
	t.Translate(rl.Vector3Scale(t.Forward(), s.Speed*s.Time().Dt))
}

func init() {
	engine.RegisterScript("{{.Name}}", {{.Lower}}Factory, {{.Lower}}Serializer)
}

func {{.Lower}}Factory(props map[string]any) engine.Script {
	s := &{{.Name}}{}
	s.SetDefaults()
	s.Speed = propFloat(props, "speed", s.Speed)
	return s
}

func {{.Lower}}Serializer(sc engine.Script) map[string]any {
	s, ok := sc.(*{{.Name}})
	if !ok {
		return nil
	}
	return map[string]any{
		"speed": s.Speed,
	}
}
`))

var luaTmpl = template.Must(template.New("lua").Parse(`local {{.Name}} = {}

function {{.Name}}:initialize()
  self.speed = self.speed or 1
end

function {{.Name}}:update()
  self:translate(0, 0, -self.speed * time.dt())
end

return {{.Name}}
`))

type templateData struct {
	Name  string
	Lower string
}

var (
	errBadName = errors.New("script name must start with an uppercase letter and contain only letters and digits")
	errExists  = errors.New("file already exists")
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("newscript", flag.ContinueOnError)
	lua := fs.Bool("lua", false, "write a Lua script instead of a Go one")
	dir := fs.String("dir", "", "output directory (default "+goScriptsDir+", or "+luaScriptsDir+" with -lua)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: go run ./cmd/newscript [-lua] [-dir path] <ScriptName>\n")
		fmt.Fprintf(fs.Output(), "Example: go run ./cmd/newscript EnemyChaser\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one script name")
	}

	name := fs.Arg(0)
	if *dir == "" {
		*dir = goScriptsDir
		if *lua {
			*dir = luaScriptsDir
		}
	}
	path, err := generate(name, *dir, *lua)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s\n", path)
	fmt.Fprintf(out, "Add it to a scene object:\n\n")
	fmt.Fprintf(out, "  { \"object\": 0, \"type\": %q, \"props\": { \"speed\": 1.0 } }\n", name)
	return nil
}

// generate writes the script file for name into dir and returns its path.
func generate(name, dir string, lua bool) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%q: %w", name, errBadName)
	}
	data := templateData{
		Name:  name,
		Lower: string(unicode.ToLower(rune(name[0]))) + name[1:],
	}

	tmpl, path := goTmpl, filepath.Join(dir, toSnakeCase(name)+".go")
	if lua {
		tmpl, path = luaTmpl, filepath.Join(dir, name+".lua")
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s: %w", path, errExists)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func validName(name string) bool {
	if name == "" || !unicode.IsUpper(rune(name[0])) {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func toSnakeCase(s string) string {
	var result []rune
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			result = append(result, '_')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/curator-labs/curator/internal/platform"
	"github.com/curator-labs/curator/internal/taxonomy"
	"github.com/curator-labs/curator/internal/unit"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var templateFS embed.FS

// InitialVersion seeds the version metadata key of every scaffolded unit.
const InitialVersion = "0.1.0"

// Modes for scaffolded artifacts.
const (
	fileMode = os.FileMode(0644)
	execMode = os.FileMode(0755)
	dirMode  = os.FileMode(0755)
)

// Result holds the outcome of a scaffold run.
type Result struct {
	UnitPath string   // the unit: file (definition) or directory (package)
	DocPath  string   // primary document
	Files    []string // created files, relative to the unit's directory
	Category taxonomy.Category
}

// templateData holds all variables available to scaffold templates.
type templateData struct {
	Name        string
	Title       string
	Category    string
	Description string
	Tier        string
	Author      string
	Version     string
	Tools       []string
	References  []string

	// Per-stub fields.
	ToolName string
	RefTitle string
}

var titleCaser = cases.Title(language.English)

// plannedFile is a fully rendered output awaiting its filesystem write.
type plannedFile struct {
	relPath string
	content []byte
	mode    os.FileMode
}

// Scaffold materializes a content unit from cfg under the library root.
//
// All validation happens before any write: config shape (JSON Schema plus
// grammar), category existence, target collision, and full in-memory
// rendering of every output file. A config error therefore leaves the
// filesystem untouched. A filesystem error partway through the final write
// phase is reported as an IOError without rolling back already-written
// files.
func Scaffold(root string, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kind := taxonomy.KindDomain
	if cfg.Kind == unit.KindPackage {
		kind = taxonomy.KindTeam
	}
	cat, ok, err := taxonomy.Lookup(root, kind, cfg.Category)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errdefs.Format("category %q does not exist under %s/; create it first", cfg.Category, taxonomy.ParentDir(kind))
	}

	data := &templateData{
		Name:        cfg.Name,
		Title:       titleCaser.String(strings.ReplaceAll(cfg.Name, "-", " ")),
		Category:    cfg.Category,
		Description: cfg.Description,
		Tier:        cfg.Tier,
		Author:      cfg.Author,
		Version:     InitialVersion,
		Tools:       cfg.Tools,
		References:  cfg.References,
	}

	if cfg.Kind == unit.KindPackage {
		return scaffoldPackage(cat, data)
	}
	return scaffoldDefinition(cat, data)
}

func scaffoldDefinition(cat taxonomy.Category, data *templateData) (*Result, error) {
	docPath := filepath.Join(cat.Dir, data.Name+".md")
	if _, err := os.Stat(docPath); err == nil {
		return nil, errdefs.Conflict("definition %s already exists", docPath)
	}

	content, err := render("definition.md.tmpl", data)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(docPath, content, fileMode); err != nil {
		return nil, errdefs.IO(fmt.Sprintf("writing %s", docPath), err)
	}

	return &Result{
		UnitPath: docPath,
		DocPath:  docPath,
		Files:    []string{filepath.Base(docPath)},
		Category: cat,
	}, nil
}

func scaffoldPackage(cat taxonomy.Category, data *templateData) (*Result, error) {
	unitDir := filepath.Join(cat.Dir, data.Name)
	if _, err := os.Stat(unitDir); err == nil {
		return nil, errdefs.Conflict("package %s already exists", unitDir)
	}

	// Render everything before the first write.
	var planned []plannedFile

	doc, err := render("package.md.tmpl", data)
	if err != nil {
		return nil, err
	}
	planned = append(planned, plannedFile{unit.PackageDocName, doc, fileMode})

	for _, tool := range data.Tools {
		stub := *data
		stub.ToolName = tool
		content, err := render("tool.sh.tmpl", &stub)
		if err != nil {
			return nil, err
		}
		planned = append(planned, plannedFile{filepath.Join(unit.ToolsDir, tool), content, execMode})
	}

	for _, ref := range data.References {
		stub := *data
		stub.RefTitle = titleCaser.String(strings.ReplaceAll(strings.TrimSuffix(ref, filepath.Ext(ref)), "-", " "))
		content, err := render("reference.md.tmpl", &stub)
		if err != nil {
			return nil, err
		}
		planned = append(planned, plannedFile{filepath.Join(unit.ReferencesDir, ref), content, fileMode})
	}

	// Empty-directory marker so assets/ survives version control.
	planned = append(planned, plannedFile{filepath.Join(unit.AssetsDir, ".gitkeep"), nil, fileMode})

	// Write phase. No rollback on partial failure.
	for _, sub := range []string{"", unit.ToolsDir, unit.ReferencesDir, unit.AssetsDir} {
		dir := filepath.Join(unitDir, sub)
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return nil, errdefs.IO(fmt.Sprintf("creating %s", dir), err)
		}
	}

	result := &Result{
		UnitPath: unitDir,
		DocPath:  filepath.Join(unitDir, unit.PackageDocName),
		Category: cat,
	}
	for _, pf := range planned {
		path := filepath.Join(unitDir, pf.relPath)
		if err := os.WriteFile(path, pf.content, fileMode); err != nil {
			return nil, errdefs.IO(fmt.Sprintf("writing %s", path), err)
		}
		if pf.mode == execMode {
			if err := platform.Chmod(path, execMode); err != nil {
				return nil, errdefs.IO(fmt.Sprintf("marking %s executable", path), err)
			}
		}
		result.Files = append(result.Files, pf.relPath)
	}

	return result, nil
}

// render executes one embedded template with data.
func render(name string, data *templateData) ([]byte, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Package unit models content units: definition documents (single files) and
// packages (directory bundles with a primary document, stub tools, stub
// references, and assets). It loads units from disk into the parsed state the
// validation engine consumes and discovers all units in a library.
package unit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/curator-labs/curator/internal/metadata"
	"github.com/curator-labs/curator/internal/taxonomy"
)

// Kind discriminates the two unit kinds.
type Kind string

const (
	KindDefinition Kind = "definition"
	KindPackage    Kind = "package"
)

// DefinitionPrefix is the reserved identifier prefix carried by definition
// documents and forbidden on packages.
const DefinitionPrefix = "def-"

// Fixed names inside a package directory.
const (
	PackageDocName = "PACKAGE.md"
	ToolsDir       = "tools"
	ReferencesDir  = "references"
	AssetsDir      = "assets"
)

// Unit is a content unit loaded from disk. Metadata and primary-document
// failures are captured on the struct rather than returned, so the
// validation engine can report them as check results while other checks
// still run.
type Unit struct {
	Kind     Kind
	ID       string // identifier: file base name or package directory name
	Category string // name of the category directory containing the unit
	Path     string // the unit itself: file (definition) or directory (package)
	DocPath  string // primary document path

	Meta      metadata.Block
	MetaFound bool  // a delimited metadata block was present
	MetaErr   error // ParseError from the block, if any
	DocErr    error // primary document unreadable

	Body string // document body below the metadata block
}

// TaxonomyKind maps the unit kind to its taxonomy parent.
func (u *Unit) TaxonomyKind() taxonomy.Kind {
	if u.Kind == KindPackage {
		return taxonomy.KindTeam
	}
	return taxonomy.KindDomain
}

// Load reads the unit at path. A directory is a package (primary document
// PACKAGE.md); a file is a definition document. The only hard error is an
// unreadable path; document and metadata defects are recorded on the Unit.
func Load(path string) (*Unit, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errdefs.IO(fmt.Sprintf("reading unit %s", path), err)
	}

	u := &Unit{
		Path:     path,
		Category: filepath.Base(filepath.Dir(path)),
	}

	if info.IsDir() {
		u.Kind = KindPackage
		u.ID = filepath.Base(path)
		u.DocPath = filepath.Join(path, PackageDocName)
	} else {
		u.Kind = KindDefinition
		u.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		u.DocPath = path
	}

	data, err := os.ReadFile(u.DocPath)
	if err != nil {
		u.DocErr = errdefs.IO(fmt.Sprintf("reading primary document %s", u.DocPath), err)
		return u, nil
	}

	meta, body, found, err := metadata.SplitDocument(string(data))
	u.MetaFound = found
	u.Body = body
	if err != nil {
		u.MetaErr = err
		return u, nil
	}
	if !found {
		return u, nil
	}

	block, err := metadata.Parse(meta)
	if err != nil {
		u.MetaErr = err
		return u, nil
	}
	u.Meta = block
	return u, nil
}

// Located is a unit found by discovery, before loading.
type Located struct {
	Path     string
	Kind     Kind
	Category string
}

// DiscoverAll walks both taxonomy parents under root and returns every
// content unit: each non-index .md file under domains/<cat>/ is a definition
// document, each subdirectory of teams/<cat>/ is a package. Results are
// ordered by parent, then category, then name.
func DiscoverAll(root string) ([]Located, error) {
	var result []Located

	domains, err := taxonomy.Discover(root, taxonomy.KindDomain)
	if err != nil {
		return nil, err
	}
	for _, cat := range domains {
		entries, err := os.ReadDir(cat.Dir)
		if err != nil {
			continue // category vanished mid-walk
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, ".") {
				continue
			}
			if !strings.HasSuffix(name, ".md") || name == taxonomy.IndexFileName {
				continue
			}
			result = append(result, Located{
				Path:     filepath.Join(cat.Dir, name),
				Kind:     KindDefinition,
				Category: cat.Name,
			})
		}
	}

	teams, err := taxonomy.Discover(root, taxonomy.KindTeam)
	if err != nil {
		return nil, err
	}
	for _, cat := range teams {
		entries, err := os.ReadDir(cat.Dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			result = append(result, Located{
				Path:     filepath.Join(cat.Dir, e.Name()),
				Kind:     KindPackage,
				Category: cat.Name,
			})
		}
	}

	return result, nil
}

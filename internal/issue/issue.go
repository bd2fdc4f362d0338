// SPDX-License-Identifier: BSD-3-Clause

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	// NoDescriptorId covers module directories missing both descriptor
	// kinds.
	NoDescriptorId Id = iota + 1
	// ModuleNotFoundId covers selectors naming unregistered modules.
	ModuleNotFoundId
	// LibraryCorruptId covers unreadable or malformed catalog files.
	LibraryCorruptId
)

// MarkdownMsg is rendered help text in markdown.
type MarkdownMsg string

// Issue is one catalog entry: a renderable help text for a recurring
// user-facing failure.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// Id returns the catalog ID.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render renders the help text with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// render is a test seam over glamour.Render.
var render = glamour.Render

var catalog = []*Issue{
	{
		id: NoDescriptorId,
		mdMsg: `
# No module descriptor found!

A CMEC module directory must contain one of:

- ` + "`settings.json`" + ` — a single-configuration module
- ` + "`contents.json`" + ` — a table of contents listing multiple configurations

## Things you can try:
- Check that you passed the module's top-level directory to ` + "`register`" + `
- Verify the descriptor file name is spelled exactly as above

## Minimal settings.json:
~~~json
{
  "settings": {
    "name": "my_metric",
    "long_name": "My metric",
    "driver": "run.sh"
  },
  "varlist": {},
  "obslist": {}
}
~~~`,
	},
	{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found in the CMEC library!

## Things you can try:
- List registered modules:
~~~
$ cmec-driver list
~~~
- Register the module first:
~~~
$ cmec-driver register <module directory>
~~~`,
	},
	{
		id: LibraryCorruptId,
		mdMsg: `
# The CMEC library file could not be read!

The library (` + "`~/.cmeclibrary`" + `) must be a JSON object with ` +
			"`version`, `cmec-driver`, and `modules`" + ` keys.

## Things you can try:
- Inspect the file for syntax errors
- Remove the file; the next command recreates an empty library
  (previously registered modules must be registered again)`,
	},
}

// Get returns the catalog entry for id, or nil when none exists.
func Get(id Id) *Issue {
	i := slices.IndexFunc(catalog, func(i *Issue) bool { return i.id == id })
	if i < 0 {
		return nil
	}
	return catalog[i]
}

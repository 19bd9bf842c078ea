package session

import (
	"sort"

	"github.com/five82/maple/internal/plextv"
	"github.com/five82/maple/internal/state"
)

// SidebarItem is one row of the sidebar as the front-end renders it.
type SidebarItem struct {
	Index     int
	Title     string
	IsSubmenu bool
}

// MenuEntry is what a sidebar index refers to: a ServerEntry or a
// LibraryEntry.
type MenuEntry interface {
	Title() string
	IsSubmenu() bool
	menuEntry()
}

// ServerEntry is a reachable server and the providers it reported.
type ServerEntry struct {
	Server    *plextv.ServerClient
	Providers []plextv.MediaProvider
}

// LibraryEntry is one content directory of a server, shown indented under
// its server.
type LibraryEntry struct {
	Server    *plextv.ServerClient
	Parent    int
	Directory plextv.Directory
}

func (e ServerEntry) Title() string   { return e.Server.Name() }
func (e ServerEntry) IsSubmenu() bool { return false }
func (ServerEntry) menuEntry()        {}

func (e LibraryEntry) Title() string   { return e.Directory.Title }
func (e LibraryEntry) IsSubmenu() bool { return true }
func (LibraryEntry) menuEntry()        {}

// Sidebar maps sidebar positions to entries.
type Sidebar struct {
	entries map[int]MenuEntry
}

// NewSidebar lays out each server followed by its content directories.
func NewSidebar(servers []ServerEntry) *Sidebar {
	sb := &Sidebar{entries: make(map[int]MenuEntry)}
	next := 0
	for _, srv := range servers {
		parent := next
		sb.entries[next] = srv
		next++
		for _, provider := range srv.Providers {
			for _, dir := range provider.ContentDirectories() {
				sb.entries[next] = LibraryEntry{Server: srv.Server, Parent: parent, Directory: dir}
				next++
			}
		}
	}
	return sb
}

// Len returns the number of entries.
func (s *Sidebar) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entry returns the entry at index.
func (s *Sidebar) Entry(index int) (MenuEntry, bool) {
	if s == nil {
		return nil, false
	}
	entry, ok := s.entries[index]
	return entry, ok
}

// Items returns the rows in index order.
func (s *Sidebar) Items() []SidebarItem {
	if s.Len() == 0 {
		return nil
	}
	indexes := make([]int, 0, len(s.entries))
	for idx := range s.entries {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	items := make([]SidebarItem, 0, len(indexes))
	for _, idx := range indexes {
		entry := s.entries[idx]
		items = append(items, SidebarItem{Index: idx, Title: entry.Title(), IsSubmenu: entry.IsSubmenu()})
	}
	return items
}

// Servers summarises the server entries for the shared store.
func (s *Sidebar) Servers() []state.Server {
	var out []state.Server
	byIndex := map[int]int{}
	for _, item := range s.Items() {
		switch entry := s.entries[item.Index].(type) {
		case ServerEntry:
			byIndex[item.Index] = len(out)
			out = append(out, state.Server{
				Name:  entry.Server.Name(),
				URI:   entry.Server.Connection().URI,
				Relay: entry.Server.IsRelay(),
			})
		case LibraryEntry:
			if pos, ok := byIndex[entry.Parent]; ok {
				out[pos].Libraries = append(out[pos].Libraries, entry.Directory.Title)
			}
		}
	}
	return out
}

package bulk

import (
	"fmt"
	"sort"
)

// Table é a definição de uma tabela aceita pelo upsert em lote
type Table struct {
	Name         string
	Columns      []Column
	HasUpdatedAt bool
	index        map[string]Column
}

func NewTable(name string, hasUpdatedAt bool, columns ...Column) *Table {
	t := &Table{
		Name:         name,
		Columns:      columns,
		HasUpdatedAt: hasUpdatedAt,
		index:        make(map[string]Column, len(columns)),
	}
	for _, c := range columns {
		t.index[c.Name] = c
	}
	return t
}

func (t *Table) Column(name string) (Column, bool) {
	c, ok := t.index[name]
	return c, ok
}

// Registry mapeia nome de tabela para sua definição
type Registry struct {
	tables map[string]*Table
}

func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.Name] = t
	}
	return r
}

func (r *Registry) Lookup(name string) (*Table, error) {
	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("tabela %q não registrada para upsert", name)
	}
	return t, nil
}

// Tables devolve as tabelas registradas em ordem de nome
func (r *Registry) Tables() []*Table {
	out := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

package metadomain

import "encoding/json"

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next"`
}

// Page é uma página de uma listagem da Graph API. Os itens ficam crus para
// preservar o JSON original de cada entidade.
type Page struct {
	Data   []json.RawMessage `json:"data"`
	Paging Paging            `json:"paging"`
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/netdoc/internal/docpart"
	"github.com/dgallion1/netdoc/internal/texdoc"
	"github.com/go-chi/chi/v5"
)

// partView is the JSON form of a part and its subtree.
type partView struct {
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Modified bool        `json:"modified"`
	Parts    []*partView `json:"parts,omitempty"`
}

func kindOf(p docpart.Part) string {
	switch p.(type) {
	case *docpart.Document:
		return "document"
	case docpart.Container:
		return "block"
	}
	switch {
	case p.Name() == "":
		return "text"
	case texdoc.ValidBlockName(p.Name()):
		return "block"
	default:
		return "definition"
	}
}

// viewOf converts the tree below root. Container text is left out since
// it only repeats the leaves.
func viewOf(root docpart.Part) *partView {
	var top *partView
	var stack []*partView
	docpart.Walk(root, func(p docpart.Part, depth int) bool {
		v := &partView{
			Name:     p.Name(),
			Kind:     kindOf(p),
			Modified: p.Modified(),
		}
		if _, ok := p.(docpart.Container); !ok {
			v.Text = p.Text()
		}
		stack = append(stack[:depth], v)
		if depth == 0 {
			top = v
		} else {
			parent := stack[depth-1]
			parent.Parts = append(parent.Parts, v)
		}
		return true
	})
	return top
}

// handleListParts returns the whole document tree.
func (s *Server) handleListParts(w http.ResponseWriter, r *http.Request) {
	var view *partView
	err := s.store.Update(targetFrom(r), func(doc *docpart.Document) error {
		view = viewOf(doc)
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// handleGetPart returns the first part with the given name, searched depth
// first, together with its TeX form.
func (s *Server) handleGetPart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var (
		view *partView
		tex  string
	)
	err := s.store.Update(targetFrom(r), func(doc *docpart.Document) error {
		p := doc.Part(name)
		if p == nil {
			return fmt.Errorf("%w: %q", docpart.ErrPartNotFound, name)
		}
		view = viewOf(p)
		tex = texdoc.String(p)
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"part": view,
		"tex":  tex,
	})
}

type setTextRequest struct {
	Text string `json:"text"`
}

// handlePutPart sets the text of the named part. A missing part is added
// to the document root as a definition, or as a text block when the name
// is a block name.
func (s *Server) handlePutPart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var req setTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	created := false
	var view *partView
	err := s.store.Update(targetFrom(r), func(doc *docpart.Document) error {
		p := doc.Part(name)
		if p == nil {
			if !texdoc.ValidDefinitionName(name) && !texdoc.ValidBlockName(name) {
				return fmt.Errorf("%w: %q has no TeX form", texdoc.ErrUnwritable, name)
			}
			p = docpart.NewLeaf(name, req.Text)
			if err := doc.AppendPart(p); err != nil {
				return err
			}
			created = true
		} else if err := p.SetText(req.Text); err != nil {
			return fmt.Errorf("set text of %q: %w", name, err)
		}
		view = viewOf(p)
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(view)
}

// handleDeletePart removes the named part, wherever it is in the tree.
func (s *Server) handleDeletePart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var removed *partView
	err := s.store.Update(targetFrom(r), func(doc *docpart.Document) error {
		p, err := doc.RemovePart(name)
		if err != nil {
			return err
		}
		removed = viewOf(p)
		return nil
	})
	if err != nil {
		s.storeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"removed": removed})
}

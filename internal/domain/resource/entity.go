package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindUnspecified   Kind = ""
	KindArticle       Kind = "ARTICLE"
	KindVideo         Kind = "VIDEO"
	KindCourse        Kind = "COURSE"
	KindBook          Kind = "BOOK"
	KindDocumentation Kind = "DOCUMENTATION"
	KindOther         Kind = "OTHER"
)

func (k Kind) Valid() bool {
	switch k {
	case KindUnspecified, KindArticle, KindVideo, KindCourse, KindBook, KindDocumentation, KindOther:
		return true
	}
	return false
}

func ParseKind(raw string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(raw)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown resource kind %q", raw)
	}
	return k, nil
}

var ErrCycle = errors.New("resource cannot be nested under itself or its descendants")

type Resource struct {
	ID          uuid.UUID  `json:"id"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Kind        Kind       `json:"kind"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
	IsCompleted bool       `json:"is_completed"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Node struct {
	Resource
	Children []*Node `json:"children"`
}

// BuildTree nests a flat list. Rows whose parent is missing from the list are
// treated as roots.
func BuildTree(items []Resource) []*Node {
	nodes := make(map[uuid.UUID]*Node, len(items))
	for _, r := range items {
		nodes[r.ID] = &Node{Resource: r, Children: []*Node{}}
	}

	roots := make([]*Node, 0)
	for _, r := range items {
		n := nodes[r.ID]
		if r.ParentID != nil {
			if p, ok := nodes[*r.ParentID]; ok && p != n {
				p.Children = append(p.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}

	sortNodes(roots)
	return roots
}

func sortNodes(ns []*Node) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].SortOrder != ns[j].SortOrder {
			return ns[i].SortOrder < ns[j].SortOrder
		}
		return strings.ToLower(ns[i].Title) < strings.ToLower(ns[j].Title)
	})
	for _, n := range ns {
		sortNodes(n.Children)
	}
}

// CheckParent rejects moving id under newParent when that would form a cycle.
// parentOf returns the current parent of a resource, nil for roots.
func CheckParent(id uuid.UUID, newParent *uuid.UUID, parentOf func(uuid.UUID) (*uuid.UUID, error)) error {
	if newParent == nil {
		return nil
	}
	seen := map[uuid.UUID]struct{}{}
	cur := newParent
	for cur != nil {
		if *cur == id {
			return ErrCycle
		}
		if _, ok := seen[*cur]; ok {
			return ErrCycle
		}
		seen[*cur] = struct{}{}
		next, err := parentOf(*cur)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

type Filter struct {
	ParentID *uuid.UUID
	RootOnly bool
}

// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package cache

import (
	"sort"
	"strings"
	"sync"
)

type trieNode struct {
	children map[rune]*trieNode
	term     string
	ids      []string
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// PrefixIndex maps terms to record IDs for prefix lookups such as
// autocomplete. Matching is case-insensitive. It is safe for concurrent use.
type PrefixIndex struct {
	mu    sync.RWMutex
	root  *trieNode
	terms int
}

// NewPrefixIndex creates an empty index.
func NewPrefixIndex() *PrefixIndex {
	return &PrefixIndex{root: newTrieNode()}
}

// Insert associates id with term. Repeated pairs are ignored.
func (p *PrefixIndex) Insert(term, id string) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || id == "" {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	node := p.root
	for _, ch := range term {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}
	if node.term == "" {
		node.term = term
		p.terms++
	}
	for _, existing := range node.ids {
		if existing == id {
			return
		}
	}
	node.ids = append(node.ids, id)
}

// Lookup returns up to limit distinct IDs whose terms start with prefix.
// Shorter terms rank first, then terms alphabetically, so an exact match
// leads. A non-positive limit returns every match.
func (p *PrefixIndex) Lookup(prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	p.mu.RLock()
	node := p.root
	for _, ch := range prefix {
		node = node.children[ch]
		if node == nil {
			p.mu.RUnlock()
			return nil
		}
	}
	var hits []*trieNode
	collect(node, &hits)
	p.mu.RUnlock()

	sort.Slice(hits, func(i, j int) bool {
		if len(hits[i].term) != len(hits[j].term) {
			return len(hits[i].term) < len(hits[j].term)
		}
		return hits[i].term < hits[j].term
	})

	seen := make(map[string]struct{})
	var out []string
	for _, n := range hits {
		for _, id := range n.ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
			if limit > 0 && len(out) == limit {
				return out
			}
		}
	}
	return out
}

func collect(node *trieNode, hits *[]*trieNode) {
	if node.term != "" {
		*hits = append(*hits, node)
	}
	for _, child := range node.children {
		collect(child, hits)
	}
}

// Len returns the number of distinct terms.
func (p *PrefixIndex) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.terms
}

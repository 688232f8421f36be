// Package graph publishes catalog entries to the knowledge graph over NATS.
package graph

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/patternbook/catalog"
)

// DefaultIngestSubject is the subject entries are published to.
const DefaultIngestSubject = "catalog.ingest.entity"

// Predicates used for catalog entry triples.
const (
	PredicateTitle    = "catalog.entry.title"
	PredicateCategory = "catalog.entry.category"
	PredicateSummary  = "catalog.entry.summary"
	PredicateRelated  = "catalog.entry.related"
)

// Triple is a single subject-predicate-object statement about an entry.
type Triple struct {
	Subject    string    `json:"subject"`
	Predicate  string    `json:"predicate"`
	Object     any       `json:"object"`
	Source     string    `json:"source"`
	Timestamp  time.Time `json:"timestamp"`
	Confidence float64   `json:"confidence"`
}

// EntityIngestMessage is the wire format for graph ingestion.
type EntityIngestMessage struct {
	ID        string    `json:"id"`
	Triples   []Triple  `json:"triples"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Publisher writes catalog entries to a NATS subject. A nil connection
// disables publishing so callers never need a NATS guard of their own.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a publisher. Pass a nil connection to get a
// no-op publisher, and an empty subject to use DefaultIngestSubject.
func NewPublisher(nc *nats.Conn, subject string) *Publisher {
	if subject == "" {
		subject = DefaultIngestSubject
	}
	return &Publisher{nc: nc, subject: subject}
}

// Enabled reports whether the publisher has a live connection.
func (p *Publisher) Enabled() bool {
	return p.nc != nil
}

// PublishEntry publishes one entry as a set of triples.
func (p *Publisher) PublishEntry(entry *catalog.Entry) error {
	if p.nc == nil {
		return nil
	}

	msg := EntryMessage(entry)

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entry %s: %w", entry.ID, err)
	}

	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish entry %s: %w", entry.ID, err)
	}

	return nil
}

// PublishCatalog publishes every entry of a finalized catalog and then
// flushes the connection.
func (p *Publisher) PublishCatalog(c *catalog.Catalog) (int, error) {
	if p.nc == nil {
		return 0, nil
	}

	entries, err := c.All()
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}

	count := 0
	for entry := range entries {
		if err := p.PublishEntry(entry); err != nil {
			return count, err
		}
		count++
	}

	if err := p.nc.Flush(); err != nil {
		return count, fmt.Errorf("flush: %w", err)
	}

	return count, nil
}

// EntryMessage builds the ingest message for an entry.
func EntryMessage(entry *catalog.Entry) EntityIngestMessage {
	entityID := EntryEntityID(entry)
	now := time.Now()

	triples := []Triple{
		{
			Subject:    entityID,
			Predicate:  PredicateTitle,
			Object:     entry.Title,
			Source:     "patternbook.catalog",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  PredicateCategory,
			Object:     string(entry.Category),
			Source:     "patternbook.catalog",
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  PredicateSummary,
			Object:     entry.Summary,
			Source:     "patternbook.catalog",
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	for _, rel := range entry.Related {
		triples = append(triples, Triple{
			Subject:    entityID,
			Predicate:  PredicateRelated,
			Object:     rel,
			Source:     "patternbook.catalog",
			Timestamp:  now,
			Confidence: 1.0,
		})
	}

	return EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}
}

// EntryEntityID generates a consistent entity ID for a catalog entry.
// Format: patternbook.catalog.<category>.<id>
func EntryEntityID(entry *catalog.Entry) string {
	return fmt.Sprintf("patternbook.catalog.%s.%s", entry.Category, entry.ID)
}

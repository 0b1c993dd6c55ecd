package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/lab2439/suuid"
)

// Event is a row keyed by a UUIDv7 in compact form. Because the compact
// alphabet is ASCII-ordered, a plain CHAR(22) primary key clusters rows
// in creation order without a separate timestamp column.
type Event struct {
	ID      string // 22-char compact UUIDv7
	Kind    string
	Payload string
}

// EventDAO encapsulates all database operations for the event table.
type EventDAO struct {
	db *sql.DB
}

// NewEventDAO creates a new DAO with provided database DSN.
func NewEventDAO(dsn string) (*EventDAO, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// DB performance and safety tuning
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &EventDAO{
		db: db,
	}, nil
}

// EnsureTable creates the event table if it does not exist yet.
func (dao *EventDAO) EnsureTable(ctx context.Context) error {
	_, err := dao.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id      CHAR(22) CHARACTER SET ascii COLLATE ascii_bin PRIMARY KEY,
			kind    VARCHAR(64)  NOT NULL,
			payload VARCHAR(255) NOT NULL
		)`)
	return err
}

// Insert stores one event, minting its UUIDv7 key at write time.
func (dao *EventDAO) Insert(ctx context.Context, kind, payload string) (Event, error) {
	id, err := suuid.New()
	if err != nil {
		return Event{}, err
	}
	ev := Event{ID: id.Compact(), Kind: kind, Payload: payload}

	_, err = dao.db.ExecContext(ctx,
		"INSERT INTO events (id, kind, payload) VALUES (?, ?, ?)",
		ev.ID, ev.Kind, ev.Payload)
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}

// ListAfter returns up to limit events with keys greater than cursor, in
// key order. An empty cursor starts from the beginning. Because the keys
// sort like their creation instants, this is a stable time-ordered page.
func (dao *EventDAO) ListAfter(ctx context.Context, cursor string, limit int) ([]Event, error) {
	rows, err := dao.db.QueryContext(ctx,
		"SELECT id, kind, payload FROM events WHERE id > ? ORDER BY id LIMIT ?",
		cursor, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Kind, &ev.Payload); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Since returns events created at or after the given instant by seeking
// to a synthetic lower-bound key built from the instant alone.
func (dao *EventDAO) Since(ctx context.Context, t time.Time, limit int) ([]Event, error) {
	gen := suuid.NewGenerator()
	// Out-of-range instants clamp to the nil/max sentinels, which still
	// work as cursors, so only other errors abort.
	bound, err := gen.NewWithTime(t)
	if err != nil && !errors.Is(err, suuid.ErrTimestampOutOfRange) {
		return nil, err
	}
	return dao.ListAfter(ctx, bound.Compact(), limit)
}

func main() {
	// Please modify this DSN with your real DB credentials before use.
	dsn := "demo:123456@tcp(127.0.0.1:3306)/test_db?parseTime=true"

	dao, err := NewEventDAO(dsn)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := dao.EnsureTable(ctx); err != nil {
		log.Fatal(err)
	}

	log.Println("Sorted store started...")

	// Simulate 10 concurrent writers, each inserting 50 events
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(writerID int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, err := dao.Insert(ctx, "order.created",
					fmt.Sprintf("writer=%d seq=%d", writerID, j))
				if err != nil {
					log.Printf("Error: %v", err)
				}
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)
	log.Printf("Total time: %s, finished inserting 500 events", elapsed)

	// Page through the table in key order and verify the keys decode to
	// non-decreasing creation instants.
	var cursor string
	var prevTS int64
	count := 0
	for {
		page, err := dao.ListAfter(ctx, cursor, 100)
		if err != nil {
			log.Fatal(err)
		}
		if len(page) == 0 {
			break
		}
		for _, ev := range page {
			id, err := suuid.DecodeFromCompact(ev.ID)
			if err != nil {
				log.Fatalf("corrupt key %q: %v", ev.ID, err)
			}
			if ts := id.Timestamp(); ts < prevTS {
				log.Fatalf("key order disagrees with time order at %q", ev.ID)
			} else {
				prevTS = ts
			}
			count++
		}
		cursor = page[len(page)-1].ID
	}
	log.Printf("Scanned %d events, key order matches creation order", count)

	recent, err := dao.Since(ctx, start, 5)
	if err != nil {
		log.Fatal(err)
	}
	for _, ev := range recent {
		log.Printf("recent: %s %s (%s)", ev.ID, ev.Kind, ev.Payload)
	}
}

package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/graphscape/graphscape/pkg/model"
)

// SQLiteCache persists the last good graph snapshot so the explorer opens
// instantly when every live source is down.
type SQLiteCache struct {
	db   *sql.DB
	path string
}

// OpenCache opens (creating if needed) the snapshot cache at path.
func OpenCache(path string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open cache database: %w", err)
	}

	c := &SQLiteCache{db: db, path: path}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the database connection
func (c *SQLiteCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *SQLiteCache) createSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			type TEXT NOT NULL,
			size REAL DEFAULT 0,
			color TEXT,
			cluster TEXT,
			repository TEXT,
			language TEXT,
			centrality REAL DEFAULT 0,
			in_degree INTEGER DEFAULT 0,
			out_degree INTEGER DEFAULT 0,
			properties TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			target TEXT NOT NULL,
			type TEXT NOT NULL,
			weight REAL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS clusters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			color TEXT,
			members TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target)`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("create cache schema: %w", err)
		}
	}
	return nil
}

// Store replaces the cached snapshot with g, atomically within one
// transaction.
func (c *SQLiteCache) Store(g model.GraphData) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin cache write: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"nodes", "edges", "clusters"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	nodeStmt, err := tx.Prepare(`
		INSERT INTO nodes (id, label, type, size, color, cluster, repository, language,
			centrality, in_degree, out_degree, properties)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, n := range g.Nodes {
		var props []byte
		if len(n.Properties) > 0 {
			props, err = json.Marshal(n.Properties)
			if err != nil {
				return fmt.Errorf("marshal properties of %s: %w", n.ID, err)
			}
		}
		if _, err := nodeStmt.Exec(
			n.ID, n.Label, string(n.Type), n.Size, n.Color, n.Cluster,
			n.Repository, n.Language, n.Centrality, n.InDegree, n.OutDegree,
			string(props),
		); err != nil {
			return fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO edges (source, target, type, weight) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, e := range g.Edges {
		if _, err := edgeStmt.Exec(e.Source, e.Target, string(e.Type), e.Weight); err != nil {
			return fmt.Errorf("insert edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	clusterStmt, err := tx.Prepare(`INSERT INTO clusters (id, name, color, members) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cluster insert: %w", err)
	}
	defer clusterStmt.Close()

	for _, cl := range g.Clusters {
		members, err := json.Marshal(cl.Nodes)
		if err != nil {
			return fmt.Errorf("marshal members of %s: %w", cl.ID, err)
		}
		if _, err := clusterStmt.Exec(cl.ID, cl.Name, cl.Color, string(members)); err != nil {
			return fmt.Errorf("insert cluster %s: %w", cl.ID, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('updated_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("record cache timestamp: %w", err)
	}

	return tx.Commit()
}

// Load reads the cached snapshot. Statistics are recomputed on read.
func (c *SQLiteCache) Load() (model.GraphData, error) {
	var data model.GraphData

	rows, err := c.db.Query(`
		SELECT id, label, type, size, color, cluster, repository, language,
			centrality, in_degree, out_degree, properties
		FROM nodes ORDER BY id
	`)
	if err != nil {
		return data, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n model.Node
		var typ string
		var color, cluster, repo, lang, props sql.NullString
		if err := rows.Scan(
			&n.ID, &n.Label, &typ, &n.Size, &color, &cluster, &repo, &lang,
			&n.Centrality, &n.InDegree, &n.OutDegree, &props,
		); err != nil {
			return data, fmt.Errorf("scan node: %w", err)
		}
		n.Type = model.NodeType(typ)
		n.Color = color.String
		n.Cluster = cluster.String
		n.Repository = repo.String
		n.Language = lang.String
		if props.Valid && props.String != "" {
			if err := json.Unmarshal([]byte(props.String), &n.Properties); err != nil {
				return data, fmt.Errorf("parse properties of %s: %w", n.ID, err)
			}
		}
		data.Nodes = append(data.Nodes, n)
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("iterate nodes: %w", err)
	}

	edgeRows, err := c.db.Query(`SELECT source, target, type, weight FROM edges ORDER BY id`)
	if err != nil {
		return data, fmt.Errorf("query edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var e model.Edge
		var typ string
		if err := edgeRows.Scan(&e.Source, &e.Target, &typ, &e.Weight); err != nil {
			return data, fmt.Errorf("scan edge: %w", err)
		}
		e.Type = model.EdgeType(typ)
		data.Edges = append(data.Edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return data, fmt.Errorf("iterate edges: %w", err)
	}

	clusterRows, err := c.db.Query(`SELECT id, name, color, members FROM clusters ORDER BY id`)
	if err != nil {
		return data, fmt.Errorf("query clusters: %w", err)
	}
	defer clusterRows.Close()

	for clusterRows.Next() {
		var cl model.Cluster
		var color, members sql.NullString
		if err := clusterRows.Scan(&cl.ID, &cl.Name, &color, &members); err != nil {
			return data, fmt.Errorf("scan cluster: %w", err)
		}
		cl.Color = color.String
		if members.Valid && members.String != "" {
			if err := json.Unmarshal([]byte(members.String), &cl.Nodes); err != nil {
				return data, fmt.Errorf("parse members of %s: %w", cl.ID, err)
			}
		}
		data.Clusters = append(data.Clusters, cl)
	}
	if err := clusterRows.Err(); err != nil {
		return data, fmt.Errorf("iterate clusters: %w", err)
	}

	data.Statistics = model.ComputeStatistics(data.Nodes, data.Edges, data.Clusters)
	return data, nil
}

// Info reports the cache timestamp and node count for source selection.
func (c *SQLiteCache) Info() (time.Time, int, error) {
	var count int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM nodes`).Scan(&count); err != nil {
		return time.Time{}, 0, err
	}

	var stamp sql.NullString
	err := c.db.QueryRow(`SELECT value FROM meta WHERE key = 'updated_at'`).Scan(&stamp)
	if err == sql.ErrNoRows {
		return time.Time{}, count, nil
	}
	if err != nil {
		return time.Time{}, 0, err
	}
	mod, err := time.Parse(time.RFC3339, stamp.String)
	if err != nil {
		return time.Time{}, count, nil
	}
	return mod, count, nil
}

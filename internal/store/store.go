// Package store keeps generated scenes in SQLite so a board can be reopened
// or inspected without regenerating it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/plus3/hexroads/hexgrid"
	"github.com/plus3/hexroads/roadnet"
	"github.com/plus3/hexroads/scene"
)

// ErrNotFound is returned when a scene id is unknown.
var ErrNotFound = errors.New("scene not found")

// DB wraps a SQLite connection holding saved scenes.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps in-memory databases shared across calls.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scenes (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		board_cols INTEGER NOT NULL,
		board_rows INTEGER NOT NULL,
		tile_radius REAL NOT NULL,
		density REAL NOT NULL,
		layout TEXT NOT NULL,
		mode TEXT NOT NULL,
		seed INTEGER NOT NULL,
		noise TEXT NOT NULL,
		sampling TEXT NOT NULL,
		noise_scale REAL NOT NULL,
		height_scale REAL NOT NULL,
		tile_count INTEGER NOT NULL,
		road_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		scene_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		height REAL NOT NULL,
		PRIMARY KEY (scene_id, idx)
	);

	CREATE TABLE IF NOT EXISTS roads (
		scene_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		a_q INTEGER NOT NULL,
		a_r INTEGER NOT NULL,
		b_q INTEGER NOT NULL,
		b_r INTEGER NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (scene_id, idx)
	);

	CREATE INDEX IF NOT EXISTS idx_scenes_created ON scenes(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type sceneRow struct {
	ID          uuid.UUID `db:"id"`
	CreatedAt   int64     `db:"created_at"`
	Cols        int       `db:"board_cols"`
	Rows        int       `db:"board_rows"`
	TileRadius  float64   `db:"tile_radius"`
	Density     float64   `db:"density"`
	Layout      string    `db:"layout"`
	Mode        string    `db:"mode"`
	Seed        int64     `db:"seed"`
	Noise       string    `db:"noise"`
	Sampling    string    `db:"sampling"`
	NoiseScale  float64   `db:"noise_scale"`
	HeightScale float64   `db:"height_scale"`
	TileCount   int       `db:"tile_count"`
	RoadCount   int       `db:"road_count"`
}

type tileRow struct {
	Q      int     `db:"q"`
	R      int     `db:"r"`
	Height float64 `db:"height"`
}

type roadRow struct {
	AQ    int     `db:"a_q"`
	AR    int     `db:"a_r"`
	BQ    int     `db:"b_q"`
	BR    int     `db:"b_r"`
	Value float64 `db:"value"`
}

func (row sceneRow) params() (scene.Params, error) {
	layout, err := hexgrid.ParseLayout(row.Layout)
	if err != nil {
		return scene.Params{}, err
	}
	mode, err := scene.ParseMode(row.Mode)
	if err != nil {
		return scene.Params{}, err
	}
	noise, err := roadnet.ParseNoiseKind(row.Noise)
	if err != nil {
		return scene.Params{}, err
	}
	sampling, err := roadnet.ParseSampling(row.Sampling)
	if err != nil {
		return scene.Params{}, err
	}
	return scene.Params{
		Cols:        row.Cols,
		Rows:        row.Rows,
		TileRadius:  row.TileRadius,
		Density:     row.Density,
		Layout:      layout,
		Mode:        mode,
		Seed:        row.Seed,
		Noise:       noise,
		Sampling:    sampling,
		NoiseScale:  row.NoiseScale,
		HeightScale: row.HeightScale,
	}, nil
}

// Summary describes a saved scene without its tiles and roads.
type Summary struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Params    scene.Params
	Tiles     int
	Roads     int
}

// SaveScene writes s under a fresh id in one transaction.
func (db *DB) SaveScene(ctx context.Context, s *scene.Scene) (uuid.UUID, error) {
	id := uuid.New()
	p := s.Params

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO scenes
		(id, created_at, board_cols, board_rows, tile_radius, density, layout, mode, seed,
		 noise, sampling, noise_scale, height_scale, tile_count, road_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UnixMilli(), p.Cols, p.Rows, p.TileRadius, p.Density,
		p.Layout.String(), p.Mode.String(), p.Seed, p.Noise.String(), p.Sampling.String(),
		p.NoiseScale, p.HeightScale, len(s.Tiles), len(s.Roads),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert scene: %w", err)
	}

	tileStmt, err := tx.PreparexContext(ctx,
		"INSERT INTO tiles (scene_id, idx, q, r, height) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return uuid.Nil, err
	}
	defer tileStmt.Close()

	for i, t := range s.Tiles {
		if _, err := tileStmt.ExecContext(ctx, id, i, t.Coord.Q, t.Coord.R, t.Height); err != nil {
			return uuid.Nil, fmt.Errorf("insert tile %s: %w", t.Coord, err)
		}
	}

	roadStmt, err := tx.PreparexContext(ctx,
		"INSERT INTO roads (scene_id, idx, a_q, a_r, b_q, b_r, value) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return uuid.Nil, err
	}
	defer roadStmt.Close()

	for i, seg := range s.Roads {
		e := seg.Road.Edge
		if _, err := roadStmt.ExecContext(ctx, id, i, e.A.Q, e.A.R, e.B.Q, e.B.R, seg.Road.Value); err != nil {
			return uuid.Nil, fmt.Errorf("insert road %s: %w", e, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// LoadScene restores a saved scene. Meshes and road endpoints are rebuilt
// from the stored params, coordinates and heights.
func (db *DB) LoadScene(ctx context.Context, id uuid.UUID) (*scene.Scene, error) {
	var row sceneRow
	err := db.conn.GetContext(ctx, &row, "SELECT * FROM scenes WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	p, err := row.params()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}

	var tiles []tileRow
	if err := db.conn.SelectContext(ctx, &tiles,
		"SELECT q, r, height FROM tiles WHERE scene_id = ? ORDER BY idx", id); err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}

	var roads []roadRow
	if err := db.conn.SelectContext(ctx, &roads,
		"SELECT a_q, a_r, b_q, b_r, value FROM roads WHERE scene_id = ? ORDER BY idx", id); err != nil {
		return nil, fmt.Errorf("load roads: %w", err)
	}

	s := &scene.Scene{
		Params: p,
		Tiles:  make([]scene.Tile, 0, len(tiles)),
		Roads:  make([]scene.Segment, 0, len(roads)),
	}
	heights := make(map[hexgrid.Axial]float64, len(tiles))
	for _, t := range tiles {
		a := hexgrid.Axial{Q: t.Q, R: t.R}
		heights[a] = t.Height
		s.Tiles = append(s.Tiles, p.NewTile(a, t.Height))
	}
	for _, r := range roads {
		edge := hexgrid.NewEdge(hexgrid.Axial{Q: r.AQ, R: r.AR}, hexgrid.Axial{Q: r.BQ, R: r.BR})
		road := roadnet.Road{
			Edge:  edge,
			From:  hexgrid.ToWorld(edge.A, p.TileRadius, p.Layout),
			To:    hexgrid.ToWorld(edge.B, p.TileRadius, p.Layout),
			Value: r.Value,
		}
		s.Roads = append(s.Roads, scene.Segment{
			Road: road,
			From: road.From.Lift(heights[edge.A]),
			To:   road.To.Lift(heights[edge.B]),
		})
	}
	return s, nil
}

// ListScenes returns every saved scene, newest first.
func (db *DB) ListScenes(ctx context.Context) ([]Summary, error) {
	var rows []sceneRow
	if err := db.conn.SelectContext(ctx, &rows,
		"SELECT * FROM scenes ORDER BY created_at DESC, rowid DESC"); err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		p, err := row.params()
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", row.ID, err)
		}
		summaries = append(summaries, Summary{
			ID:        row.ID,
			CreatedAt: time.UnixMilli(row.CreatedAt),
			Params:    p,
			Tiles:     row.TileCount,
			Roads:     row.RoadCount,
		})
	}
	return summaries, nil
}

// DeleteScene removes a saved scene and reports whether it existed.
func (db *DB) DeleteScene(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM scenes WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	for _, table := range []string{"tiles", "roads"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE scene_id = ?", id); err != nil {
			return false, fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return n > 0, tx.Commit()
}

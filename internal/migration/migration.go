// Package migration holds the SQLite schema for the profile cache.
package migration

// Create builds the full schema. Every statement is idempotent so it can be
// executed against both fresh and existing databases.
const Create = `
CREATE TABLE IF NOT EXISTS Artist (
	name TEXT NOT NULL PRIMARY KEY,
	total_songs INTEGER NOT NULL,
	hit_songs INTEGER NOT NULL,
	good_songs INTEGER NOT NULL,
	mid_songs INTEGER NOT NULL,
	bust_songs INTEGER NOT NULL,
	hit_rate REAL NOT NULL,
	good_rate REAL NOT NULL,
	mid_rate REAL NOT NULL,
	bust_rate REAL NOT NULL,
	estimated_total_revenue REAL NOT NULL,
	avg_revenue_per_song REAL NOT NULL,
	primary_genre TEXT,
	explicit_ratio REAL NOT NULL,
	first_release TEXT,
	last_release TEXT,
	career_span_years REAL NOT NULL,
	avg_energy REAL NOT NULL,
	avg_danceability REAL NOT NULL,
	avg_positiveness REAL NOT NULL,
	avg_speechiness REAL NOT NULL,
	avg_liveness REAL NOT NULL,
	avg_acousticness REAL NOT NULL,
	avg_instrumentalness REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS Song (
	id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
	artist TEXT NOT NULL,
	title TEXT NOT NULL,
	popularity INTEGER,
	tier TEXT NOT NULL,
	revenue REAL NOT NULL,
	release_date TEXT,
	FOREIGN KEY (artist) REFERENCES Artist (name)
);
CREATE INDEX IF NOT EXISTS SongArtistIndex ON Song (artist);

CREATE TABLE IF NOT EXISTS ArtistGenre (
	artist TEXT NOT NULL,
	genre TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (artist, genre),
	FOREIGN KEY (artist) REFERENCES Artist (name)
);

CREATE TABLE IF NOT EXISTS Meta (
	id INTEGER NOT NULL PRIMARY KEY CHECK (id = 1),
	dataset TEXT NOT NULL,
	song_rows INTEGER NOT NULL,
	analyzed_at TIMESTAMP NOT NULL
);
`

package dataset

import (
	"strings"
	"testing"
)

const sampleCSV = `Song,Artist(s),Popularity,Genre,Explicit,Release Date,Energy,Danceability
First,Alpha,82,pop,Yes,2020-01-15,74,60
Second,"Alpha, Beta",40.0,rock,No,2021/06/01,50,
Third,Beta,,,,,not-a-number,
Fourth,Gamma,150,hip hop,1,sometime,,
`

func TestReadHeaderDiscovery(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	first := records[0]
	if first.Title != "First" {
		t.Errorf("title = %q, want First", first.Title)
	}
	if len(first.Artists) != 1 || first.Artists[0] != "Alpha" {
		t.Errorf("artists = %v, want [Alpha]", first.Artists)
	}
	if first.Popularity == nil || *first.Popularity != 82 {
		t.Errorf("popularity = %v, want 82", first.Popularity)
	}
	if first.Genre == nil || *first.Genre != "pop" {
		t.Errorf("genre = %v, want pop", first.Genre)
	}
	if !first.Explicit {
		t.Error("explicit = false, want true for Yes")
	}
	if first.ReleaseDate == nil {
		t.Error("release date should parse for 2020-01-15")
	}
	if e := first.AudioFeatures["energy"]; e == nil || *e != 74 {
		t.Errorf("energy = %v, want 74", e)
	}
}

func TestReadSplitsArtists(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	second := records[1]
	if len(second.Artists) != 2 || second.Artists[0] != "Alpha" || second.Artists[1] != "Beta" {
		t.Errorf("artists = %v, want [Alpha Beta]", second.Artists)
	}
	if second.RawArtists != "Alpha, Beta" {
		t.Errorf("raw artists = %q", second.RawArtists)
	}
	// Float popularity text is accepted.
	if second.Popularity == nil || *second.Popularity != 40 {
		t.Errorf("popularity = %v, want 40", second.Popularity)
	}
	if second.Explicit {
		t.Error("explicit = true, want false for No")
	}
}

func TestReadToleratesBadValues(t *testing.T) {
	records, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	third := records[2]
	if third.Popularity != nil {
		t.Errorf("empty popularity = %v, want nil", third.Popularity)
	}
	if third.Genre != nil {
		t.Errorf("empty genre = %v, want nil", third.Genre)
	}
	if third.AudioFeatures["energy"] != nil {
		t.Error("unparseable energy should be nil")
	}

	fourth := records[3]
	if fourth.Popularity != nil {
		t.Errorf("out-of-range popularity = %v, want nil", fourth.Popularity)
	}
	if !fourth.Explicit {
		t.Error("explicit = false, want true for 1")
	}
	if fourth.ReleaseDate != nil {
		t.Error("unparseable release date should be nil")
	}
	if fourth.RawReleaseDate != "sometime" {
		t.Errorf("raw release date = %q, want sometime", fourth.RawReleaseDate)
	}
}

func TestReadRequiresArtistColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Song,Popularity\nX,50\n"))
	if err == nil {
		t.Fatal("Read should fail without an artist(s) column")
	}
	if !strings.Contains(err.Error(), "artist(s)") {
		t.Errorf("error %q should name the missing column", err)
	}
}

func TestReadRaggedRows(t *testing.T) {
	records, err := Read(strings.NewReader("Song,Artist(s),Popularity\nShort,Alpha\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Popularity != nil {
		t.Error("missing trailing field should read as nil popularity")
	}
}

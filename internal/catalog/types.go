package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/samber/lo"
)

// ImageKind discriminates the two shapes image_url takes in payloads.
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageFlat
	ImageSplit
)

// ImageSpec is image_url resolved at decode time: either one flat URL used
// for every slot, or separate list and cover URLs (each possibly empty).
type ImageSpec struct {
	Kind  ImageKind
	URL   string
	List  string
	Cover string
}

func (s *ImageSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = ImageSpec{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '"':
		var flat string
		if err := json.Unmarshal(data, &flat); err != nil {
			return err
		}
		if flat != "" {
			*s = ImageSpec{Kind: ImageFlat, URL: flat}
		}
		return nil
	case '{':
		var split struct {
			List  string `json:"list"`
			Cover string `json:"cover"`
		}
		if err := json.Unmarshal(data, &split); err != nil {
			return err
		}
		*s = ImageSpec{Kind: ImageSplit, List: split.List, Cover: split.Cover}
		return nil
	default:
		// Arrays and other shapes carry nothing usable.
		return nil
	}
}

type genreValue struct {
	Value string `json:"value"`
}

// GenreList decodes a list of {"id", "value"} objects into their values.
// Any other shape decodes to an empty list.
type GenreList []string

func (g *GenreList) UnmarshalJSON(data []byte) error {
	var raw []genreValue
	if err := json.Unmarshal(data, &raw); err != nil {
		*g = nil
		return nil
	}
	*g = lo.FilterMap(raw, func(item genreValue, _ int) (string, bool) {
		return item.Value, item.Value != ""
	})
	return nil
}

// FlexInt accepts a JSON number, a numeric string, or null.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexInt(f)
	return nil
}

// ContentRecord is a heterogeneous catalog item. AssetSubtype is the only
// field that decides how it is rendered.
type ContentRecord struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	AssetSubtype  string    `json:"asset_subtype"`
	Image         ImageSpec `json:"image_url"`
	Genre         GenreList `json:"genre"`
	Genres        GenreList `json:"genres"`
	EpisodeNumber FlexInt   `json:"episode_number"`
	ReleaseDate   string    `json:"release_date"`
	Duration      FlexInt   `json:"duration"`
}

// GenreValues returns the de-duplicated union of the genre and genres
// fields, which the API uses interchangeably.
func (r *ContentRecord) GenreValues() []string {
	if r == nil {
		return nil
	}
	return lo.Uniq(append(append([]string{}, r.Genre...), r.Genres...))
}

// Page carries the cursor fields of a paged response.
type Page struct {
	Page  FlexInt `json:"page"`
	Limit FlexInt `json:"limit"`
	Total FlexInt `json:"total"`
}

// HasNext reports whether another page follows this one.
func (p Page) HasNext() bool {
	return int(p.Page)*int(p.Limit) < int(p.Total)
}

// Bucket is a named group of items inside a collection.
type Bucket struct {
	ContentRecord
	Items []ContentRecord `json:"items"`
}

// Collection is a paged collection or bucket response.
type Collection struct {
	ContentRecord
	Page
	Buckets []Bucket `json:"buckets"`
}

// Show is a TV show with its seasons.
type Show struct {
	ContentRecord
	Seasons []ContentRecord `json:"seasons"`
}

// Season is a season with its episodes.
type Season struct {
	ContentRecord
	Episodes []ContentRecord `json:"episode"`
}

// VideoDetails holds the stream locators of a playable asset.
type VideoDetails struct {
	HLSURL    string   `json:"hls_url"`
	URL       string   `json:"url"`
	Subtitles []string `json:"subtitles"`
}

// Details is the full record of one playable asset.
type Details struct {
	ContentRecord
	VideoDetails VideoDetails `json:"video_details"`
}

// SearchResult is an autosuggest response.
type SearchResult struct {
	NumFound FlexInt         `json:"numFound"`
	Docs     []ContentRecord `json:"docs"`
}

type countryEntry struct {
	Collections map[string]map[string]string `json:"collections"`
}

type platformToken struct {
	Token string `json:"token"`
}

type videoToken struct {
	VideoToken string `json:"video_token"`
}

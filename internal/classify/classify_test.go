package classify

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"zee5/internal/catalog"
	"zee5/internal/media"
)

func record(t *testing.T, raw string) *catalog.ContentRecord {
	t.Helper()
	var rec catalog.ContentRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	return &rec
}

func TestClassify(t *testing.T) {
	Convey("Classify", t, func() {
		Convey("Manual is a nested bucket", func() {
			So(Classify("Manual"), ShouldEqual, KindBucket)
		})
		Convey("leaf subtypes are playable", func() {
			for _, s := range []string{"trailer", "movie", "video", "episode", "teaser", "music", "webisode", "clip", "preview", "news"} {
				So(Classify(s), ShouldEqual, KindPlayable)
			}
		})
		Convey("originals and tv shows are shows", func() {
			So(Classify("original"), ShouldEqual, KindShow)
			So(Classify("tvshow"), ShouldEqual, KindShow)
		})
		Convey("external links are ignored", func() {
			So(Classify("external_link"), ShouldEqual, KindIgnored)
		})
		Convey("anything else is unrecognized", func() {
			So(Classify("bogus"), ShouldEqual, KindUnrecognized)
			So(Classify(""), ShouldEqual, KindUnrecognized)
			So(Classify("manual"), ShouldEqual, KindUnrecognized)
		})
	})
}

func TestGenre(t *testing.T) {
	Convey("Genre", t, func() {
		Convey("unions overlapping genre and genres", func() {
			rec := record(t, `{"genre":[{"value":"Drama"},{"value":"Comedy"}],"genres":[{"value":"Comedy"},{"value":"Action"}]}`)
			So(Genre(rec), ShouldEqual, "Drama,Comedy,Action")
		})
		Convey("accepts either field alone", func() {
			So(Genre(record(t, `{"genres":[{"value":"Drama"}]}`)), ShouldEqual, "Drama")
			So(Genre(record(t, `{"genre":[{"value":"News"}]}`)), ShouldEqual, "News")
		})
		Convey("falls back to ALL", func() {
			So(Genre(nil), ShouldEqual, AllGenres)
			So(Genre(record(t, `{}`)), ShouldEqual, AllGenres)
			So(Genre(record(t, `{"genre":[],"genres":null}`)), ShouldEqual, AllGenres)
		})
	})
}

func TestImages(t *testing.T) {
	Convey("Images", t, func() {
		Convey("a bare string fills both slots", func() {
			list, cover := Images(record(t, `{"image_url":"https://img/x.jpg"}`))
			So(list, ShouldEqual, "https://img/x.jpg")
			So(cover, ShouldEqual, "https://img/x.jpg")
		})
		Convey("a mapping is read member by member", func() {
			list, cover := Images(record(t, `{"image_url":{"list":"l"}}`))
			So(list, ShouldEqual, "l")
			So(cover, ShouldBeEmpty)
		})
		Convey("absent yields nothing", func() {
			list, cover := Images(record(t, `{}`))
			So(list, ShouldBeEmpty)
			So(cover, ShouldBeEmpty)
			list, cover = Images(nil)
			So(list+cover, ShouldBeEmpty)
		})
		Convey("art falls back across slots", func() {
			So(Art(record(t, `{"image_url":{"cover":"c"}}`)), ShouldResemble, media.Art{Thumb: "c", Icon: "c", Fanart: "c"})
			So(Art(record(t, `{"image_url":{"list":"l","cover":"c"}}`)), ShouldResemble, media.Art{Thumb: "l", Icon: "l", Fanart: "c"})
		})
	})
}

func TestReleaseDate(t *testing.T) {
	Convey("ReleaseDate", t, func() {
		Convey("takes the date before the time separator", func() {
			r, ok := ReleaseDate("2018-12-30T00:00:00").Get()
			So(ok, ShouldBeTrue)
			So(r.Year, ShouldEqual, 2018)
			So(r.Date, ShouldEqual, "30.12.2018")
		})
		Convey("accepts a plain date", func() {
			r, ok := ReleaseDate("2020-01-05").Get()
			So(ok, ShouldBeTrue)
			So(r.Date, ShouldEqual, "05.01.2020")
		})
		Convey("degrades on garbage or empty input", func() {
			So(ReleaseDate("not a date").IsAbsent(), ShouldBeTrue)
			So(ReleaseDate("2020-13-45").IsAbsent(), ShouldBeTrue)
			So(ReleaseDate("").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestPlainText(t *testing.T) {
	Convey("PlainText", t, func() {
		So(PlainText("  plain words "), ShouldEqual, "plain words")
		So(PlainText("<p>Richa &amp; <b>Gulshan</b></p>"), ShouldEqual, "Richa & Gulshan")
	})
}

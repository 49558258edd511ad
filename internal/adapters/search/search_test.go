package search_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	search "github.com/okian/riddlerush/internal/adapters/search"
	dataset "github.com/okian/riddlerush/internal/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

const petscanFixture = `{
  "*": [
    {
      "a": {
        "*": [
          {"title": "Belgien"},
          {"title": "Brasilien_Land"},
          {"title": "Staat"},
          {"title": "Bolivien"}
        ]
      }
    }
  ]
}`

func TestPetScanLookup(t *testing.T) {
	ctx := context.Background()

	Convey("Given a PetScan endpoint returning members", t, func() {
		var gotQuery map[string][]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(petscanFixture))
		}))
		defer srv.Close()

		client := search.NewPetScan(search.WithBaseURL(srv.URL))

		Convey("When looking up a category", func() {
			titles, err := client.Lookup(ctx, "Staat", "b")
			So(err, ShouldBeNil)

			Convey("Then titles are cut at the first underscore and the category itself is dropped", func() {
				So(titles, ShouldResemble, []string{"Belgien", "Brasilien", "Bolivien"})
			})

			Convey("And the query selects the German wikipedia category", func() {
				So(gotQuery["categories"], ShouldResemble, []string{"Staat"})
				So(gotQuery["project"], ShouldResemble, []string{"wikipedia"})
				So(gotQuery["language"], ShouldResemble, []string{"de"})
				So(gotQuery["format"], ShouldResemble, []string{"json"})
			})
		})
	})

	Convey("Given a PetScan endpoint returning garbage", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer srv.Close()

		client := search.NewPetScan(search.WithBaseURL(srv.URL))

		Convey("Then lookup reports a decode error", func() {
			_, err := client.Lookup(ctx, "Stadt_in_Deutschland", "b")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a PetScan endpoint returning a server error", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := search.NewPetScan(search.WithBaseURL(srv.URL))

		Convey("Then lookup reports a request error", func() {
			_, err := client.Lookup(ctx, "Stadt_in_Deutschland", "b")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an unreachable endpoint", t, func() {
		client := search.NewPetScan(
			search.WithBaseURL("http://127.0.0.1:1"),
			search.WithTimeout(200*time.Millisecond),
		)

		Convey("Then lookup errors instead of hanging", func() {
			_, err := client.Lookup(ctx, "Stadt_in_Deutschland", "b")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given an empty result set", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"*": []}`))
		}))
		defer srv.Close()

		client := search.NewPetScan(search.WithBaseURL(srv.URL))

		Convey("Then lookup yields no titles and no error", func() {
			titles, err := client.Lookup(ctx, "Stadt_in_Deutschland", "b")
			So(err, ShouldBeNil)
			So(titles, ShouldBeEmpty)
		})
	})
}

func TestOfflineLookup(t *testing.T) {
	ctx := context.Background()

	Convey("Given an offline index", t, func() {
		source := search.NewOffline(dataset.OfflineAnswers{
			"Tiere": {
				"k": {"Katze", "Kuh"},
			},
		})

		Convey("When looking up a known category and letter", func() {
			terms, err := source.Lookup(ctx, "Tiere", "k")
			So(err, ShouldBeNil)
			So(terms, ShouldResemble, []string{"Katze", "Kuh"})
		})

		Convey("When the letter is uppercase", func() {
			terms, err := source.Lookup(ctx, "Tiere", "K")
			So(err, ShouldBeNil)
			So(terms, ShouldResemble, []string{"Katze", "Kuh"})
		})

		Convey("When the category is unknown", func() {
			terms, err := source.Lookup(ctx, "Planeten", "k")
			So(err, ShouldBeNil)
			So(terms, ShouldBeEmpty)
		})

		Convey("When the letter has no entries", func() {
			terms, err := source.Lookup(ctx, "Tiere", "x")
			So(err, ShouldBeNil)
			So(terms, ShouldBeEmpty)
		})
	})
}

package dataset_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	dataset "github.com/okian/riddlerush/internal/dataset"
	model "github.com/okian/riddlerush/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadCategories(t *testing.T) {
	Convey("Given the embedded category dataset", t, func() {
		categories, err := dataset.LoadCategories("")

		Convey("Then it parses and is non-empty", func() {
			So(err, ShouldBeNil)
			So(len(categories), ShouldBeGreaterThan, 0)
		})

		Convey("And every category names a known provider", func() {
			for _, c := range categories {
				So(c.SearchProvider, ShouldBeIn,
					model.ProviderPetScan, model.ProviderOffline, model.ProviderWikipedia)
				So(c.SearchWord, ShouldNotBeEmpty)
				So(c.Key, ShouldNotBeEmpty)
			}
		})
	})

	Convey("Given an external categories file", t, func() {
		path := filepath.Join(t.TempDir(), "categories.json")
		payload := `[{"id":1,"name":"Tier","searchWord":"Tiere","key":"animals","searchProvider":"offline"}]`
		So(os.WriteFile(path, []byte(payload), 0o600), ShouldBeNil)

		categories, err := dataset.LoadCategories(path)

		Convey("Then the file takes precedence over the embedded data", func() {
			So(err, ShouldBeNil)
			So(categories, ShouldHaveLength, 1)
			So(categories[0].SearchWord, ShouldEqual, "Tiere")
		})
	})

	Convey("Given an empty dataset file", t, func() {
		path := filepath.Join(t.TempDir(), "categories.json")
		So(os.WriteFile(path, []byte(`[]`), 0o600), ShouldBeNil)

		_, err := dataset.LoadCategories(path)
		So(err, ShouldEqual, dataset.ErrEmptyDataset)
	})
}

func TestLoadOfflineAnswers(t *testing.T) {
	Convey("Given the embedded offline answers", t, func() {
		answers, err := dataset.LoadOfflineAnswers("")

		Convey("Then the index parses", func() {
			So(err, ShouldBeNil)
			So(len(answers), ShouldBeGreaterThan, 0)
		})

		Convey("And the animals category covers the k terms", func() {
			So(answers["Tiere"]["k"], ShouldContain, "Katze")
			So(answers["Tiere"]["k"], ShouldContain, "Kuh")
		})
	})
}

func TestFindBySearchWord(t *testing.T) {
	Convey("Given loaded categories", t, func() {
		categories, err := dataset.LoadCategories("")
		So(err, ShouldBeNil)

		Convey("When looking up a known search word", func() {
			c, err := dataset.FindBySearchWord(categories, "Tiere")
			So(err, ShouldBeNil)
			So(c.Name, ShouldEqual, "Tier")
		})

		Convey("When looking up an unknown search word", func() {
			_, err := dataset.FindBySearchWord(categories, "Planeten")
			So(err, ShouldEqual, dataset.ErrCategoryNotFound)
		})
	})
}

func TestRandom(t *testing.T) {
	Convey("Given loaded categories and a seeded source", t, func() {
		categories, err := dataset.LoadCategories("")
		So(err, ShouldBeNil)
		rng := rand.New(rand.NewSource(3))

		Convey("Then random draws come from the dataset", func() {
			for i := 0; i < 20; i++ {
				c, err := dataset.Random(categories, rng)
				So(err, ShouldBeNil)
				_, found := dataset.FindBySearchWord(categories, c.SearchWord)
				So(found, ShouldBeNil)
			}
		})

		Convey("And an empty pool errors", func() {
			_, err := dataset.Random(nil, rng)
			So(err, ShouldEqual, dataset.ErrEmptyDataset)
		})
	})
}

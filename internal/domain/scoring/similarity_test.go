package scoring_test

import (
	"testing"

	scoring "github.com/okian/riddlerush/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeAnswer(t *testing.T) {
	Convey("Given raw answers", t, func() {
		Convey("Then whitespace is trimmed and collapsed", func() {
			So(scoring.NormalizeAnswer("  New   York  "), ShouldEqual, "new york")
		})

		Convey("Then case is folded", func() {
			So(scoring.NormalizeAnswer("KATZE"), ShouldEqual, "katze")
		})

		Convey("Then diacritics are stripped", func() {
			So(scoring.NormalizeAnswer("café"), ShouldEqual, "cafe")
			So(scoring.NormalizeAnswer("Müller"), ShouldEqual, "muller")
			So(scoring.NormalizeAnswer("São Paulo"), ShouldEqual, "sao paulo")
		})
	})
}

func TestLevenshteinDistance(t *testing.T) {
	Convey("Given string pairs", t, func() {
		Convey("Then identical strings have distance zero", func() {
			So(scoring.LevenshteinDistance("katze", "katze"), ShouldEqual, 0)
		})

		Convey("Then empty strings cost the other's length", func() {
			So(scoring.LevenshteinDistance("", "abc"), ShouldEqual, 3)
			So(scoring.LevenshteinDistance("abc", ""), ShouldEqual, 3)
		})

		Convey("Then single edits cost one", func() {
			So(scoring.LevenshteinDistance("katze", "catze"), ShouldEqual, 1)
			So(scoring.LevenshteinDistance("katze", "katz"), ShouldEqual, 1)
			So(scoring.LevenshteinDistance("katze", "kaetze"), ShouldEqual, 1)
		})

		Convey("Then the classic example holds", func() {
			So(scoring.LevenshteinDistance("kitten", "sitting"), ShouldEqual, 3)
		})
	})
}

func TestAreSimilarAnswers(t *testing.T) {
	Convey("Given answer pairs at the default threshold", t, func() {
		Convey("Then diacritic variants are identical after normalization", func() {
			So(scoring.AreSimilarAnswers("café", "cafe", 0), ShouldBeTrue)
		})

		Convey("Then near misses pass", func() {
			So(scoring.AreSimilarAnswers("Giraffe", "Girafe", 0), ShouldBeTrue)
		})

		Convey("Then different words fail", func() {
			So(scoring.AreSimilarAnswers("Katze", "Hund", 0), ShouldBeFalse)
		})

		Convey("Then a stricter threshold rejects near misses", func() {
			So(scoring.AreSimilarAnswers("Giraffe", "Girafe", 0.99), ShouldBeFalse)
		})
	})

	Convey("Given the similarity score itself", t, func() {
		Convey("Then it is 1 for equal normalized inputs", func() {
			So(scoring.Similarity(" Café ", "cafe"), ShouldEqual, 1)
		})

		Convey("Then it scales with edit distance", func() {
			// "abcd" vs "abcx": one edit over four runes.
			So(scoring.Similarity("abcd", "abcx"), ShouldEqual, 0.75)
		})
	})
}

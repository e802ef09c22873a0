package keywords_test

import (
	"testing"

	"github.com/rolematch/rolematch/internal/domain/keywords"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCategorizer(t *testing.T) {
	Convey("Given a categorizer over a small dictionary", t, func() {
		dict := keywords.Dictionary{
			"PROGRAMMING PROFICIENCY": {"program", "python", "c++"},
			"MECHANICAL SKILLS":       {"mechanical", "tools"},
			"JUDGING":                 {`~\bjudge\b`},
		}
		c, err := keywords.NewCategorizer(dict)
		So(err, ShouldBeNil)

		Convey("When text contains substring matches", func() {
			counts := c.Categorize("Programming experience with Python required")

			Convey("Then stems match without word boundaries", func() {
				So(counts["PROGRAMMING PROFICIENCY"], ShouldEqual, 2)
			})
		})

		Convey("When a regex pattern requires a whole word", func() {
			Convey("Then 'judge' matches but 'prejudged' does not", func() {
				So(c.Categorize("served as a judge")["JUDGING"], ShouldEqual, 1)
				So(c.Categorize("prejudged entries")["JUDGING"], ShouldEqual, 0)
			})
		})

		Convey("When matching is case-insensitive", func() {
			So(c.Categories("MECHANICAL aptitude"), ShouldResemble, []string{"MECHANICAL SKILLS"})
		})

		Convey("When text matches nothing", func() {
			Convey("Then the category set is empty, not an error", func() {
				So(c.Categories("underwater basket weaving"), ShouldBeEmpty)
			})
		})

		Convey("When text matches several categories", func() {
			cats := c.Categories("python tools")
			So(cats, ShouldResemble, []string{"MECHANICAL SKILLS", "PROGRAMMING PROFICIENCY"})
		})

		Convey("When asking for the top category", func() {
			top, ok := c.TopCategory("python programming scripts with tools")

			Convey("Then the highest match count wins", func() {
				So(ok, ShouldBeTrue)
				So(top, ShouldEqual, "PROGRAMMING PROFICIENCY")
			})
		})

		Convey("When the top category is asked of empty text", func() {
			_, ok := c.TopCategory("")
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a dictionary with a broken regex pattern", t, func() {
		_, err := keywords.NewCategorizer(keywords.Dictionary{"BAD": {`~(`}})

		Convey("Then compilation fails with the pattern kind", func() {
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "bad keyword pattern")
		})
	})
}

func TestDefaults(t *testing.T) {
	Convey("Given the embedded dictionary asset", t, func() {
		sets := keywords.Defaults()

		Convey("Then all three sets are present", func() {
			So(sets, ShouldContainKey, keywords.SetRequiredSkills)
			So(sets, ShouldContainKey, keywords.SetRequiredExperience)
			So(sets, ShouldContainKey, keywords.SetPreferredExperience)
		})

		Convey("When compiling the required skills set", func() {
			c, err := sets.Categorizer(keywords.SetRequiredSkills)
			So(err, ShouldBeNil)

			Convey("Then well-known requirement text categorizes", func() {
				top, ok := c.TopCategory("Programming proficiency in C++, Java, Python, or LabVIEW")
				So(ok, ShouldBeTrue)
				So(top, ShouldEqual, "PROGRAMMING PROFICIENCY")
			})
		})

		Convey("When compiling an unknown set", func() {
			_, err := sets.Categorizer("no_such_set")
			So(err, ShouldNotBeNil)
		})
	})
}

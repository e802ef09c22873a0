package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	service "github.com/rolematch/rolematch/internal/app"
	"github.com/rolematch/rolematch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const sheetHeader = "role_name,work_pref,age_min,age_preference,leadership_pref," +
	"required_certifications,required_skills,required_experience,preferred_experience," +
	"physical_req,prior_first_exp,basic_game_knowledge,regionals_day_commitment,district_day_commitment\n"

// writeCatalog writes a temporary catalog CSV and returns its path.
func writeCatalog(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roles.csv")
	if err := os.WriteFile(path, []byte(sheetHeader+rows), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func defaultCatalog(t *testing.T) string {
	t.Helper()
	return writeCatalog(t,
		"Scorekeeper,BTS,,,FALSE,,,,,FALSE,FALSE,AVERAGE,Sat,Sat\n"+
			"Referee,FRONT,18,,TRUE,,,,,TRUE,TRUE,THOROUGH,Thu Fri Sat Sun,Fri Sat Sun\n"+
			"Greeter,FRONT,,,FALSE,,,,,FALSE,FALSE,NONE,Sun,Sun\n")
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTopN(5),
			service.WithFallbackFloor(3),
			service.WithElimination(false),
			service.WithLinksPath(""),
		)

		Convey("Then it should be created successfully", func() {
			So(svc, ShouldNotBeNil)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithCatalogPath(defaultCatalog(t)))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
			})

			Convey("And it should be marked as started", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["roles"], ShouldEqual, 3)
			})
		})
	})

	Convey("Given a service pointed at a missing catalog", t, func() {
		svc := service.New(service.WithCatalogPath("/nonexistent/roles.csv"))

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithCatalogPath(defaultCatalog(t)))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := svc.Start(ctx)
		So(err, ShouldBeNil)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_Questions(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithCatalogPath(defaultCatalog(t)))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When fetching the questionnaire", func() {
			all := svc.Questions(ctx)

			Convey("Then it should return every question in order", func() {
				So(len(all), ShouldEqual, 12)
				So(all[0].ID, ShouldEqual, 0)
				So(all[len(all)-1].ID, ShouldEqual, 11)
			})
		})

		Convey("When fetching one question", func() {
			q, err := svc.Question(ctx, 1)

			Convey("Then it should return the question", func() {
				So(err, ShouldBeNil)
				So(q.ID, ShouldEqual, 1)
				So(q.Text, ShouldNotBeEmpty)
			})
		})

		Convey("When fetching an unknown question", func() {
			_, err := svc.Question(ctx, 99)

			Convey("Then it should return an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestService_Roles(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithCatalogPath(defaultCatalog(t)))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When listing roles", func() {
			roles := svc.Roles(ctx)

			Convey("Then they should be in catalog order", func() {
				So(roles, ShouldResemble, []string{"Scorekeeper", "Referee", "Greeter"})
			})
		})
	})
}

func TestService_ReloadCatalog(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithCatalogPath(defaultCatalog(t)))
		ctx := context.Background()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When reloading a replacement catalog", func() {
			replacement := writeCatalog(t,
				"Announcer,FRONT,,,FALSE,,,,,FALSE,FALSE,NONE,Sat,Sat\n")
			err := svc.ReloadCatalog(ctx, replacement)

			Convey("Then the active catalog should be swapped", func() {
				So(err, ShouldBeNil)
				So(svc.Roles(ctx), ShouldResemble, []string{"Announcer"})
			})
		})

		Convey("When reloading a missing file", func() {
			err := svc.ReloadCatalog(ctx, "/nonexistent/roles.csv")

			Convey("Then the active catalog should be kept", func() {
				So(err, ShouldNotBeNil)
				So(len(svc.Roles(ctx)), ShouldEqual, 3)
			})
		})
	})
}

func TestService_GetStats(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
			})
		})
	})
}

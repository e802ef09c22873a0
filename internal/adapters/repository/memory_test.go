package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/rolematch/rolematch/internal/adapters/repository"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty memory store", t, func() {
		now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore(repository.WithClock(func() time.Time { return now }))

		Convey("sessions are created in progress", func() {
			sess, err := store.CreateSession(ctx, "s1")
			So(err, ShouldBeNil)
			So(sess.Status, ShouldEqual, repository.StatusInProgress)
			So(sess.CreatedAt, ShouldEqual, now)

			Convey("and duplicate ids are rejected", func() {
				_, err := store.CreateSession(ctx, "s1")
				So(err, ShouldWrap, repository.ErrDuplicateSession)
			})

			Convey("and can be completed", func() {
				So(store.CompleteSession(ctx, "s1"), ShouldBeNil)
				got, err := store.Session(ctx, "s1")
				So(err, ShouldBeNil)
				So(got.Status, ShouldEqual, repository.StatusCompleted)
			})
		})

		Convey("unknown sessions are reported", func() {
			_, err := store.Session(ctx, "missing")
			So(err, ShouldWrap, repository.ErrSessionNotFound)
			So(store.CompleteSession(ctx, "missing"), ShouldWrap, repository.ErrSessionNotFound)
		})

		Convey("answers require an existing session", func() {
			err := store.SaveAnswer(ctx, repository.AnswerRecord{SessionID: "missing", QuestionID: 1})
			So(err, ShouldWrap, repository.ErrSessionNotFound)
		})
	})

	Convey("Given a session with saved answers", t, func() {
		store := repository.NewMemoryStore()
		_, err := store.CreateSession(ctx, "s1")
		So(err, ShouldBeNil)

		save := func(id int, answer string) {
			So(store.SaveAnswer(ctx, repository.AnswerRecord{
				SessionID:  "s1",
				QuestionID: id,
				Answer:     answer,
			}), ShouldBeNil)
		}
		save(5, `["Friday"]`)
		save(1, "18 and older")
		save(8, "Yes")

		Convey("answers come back ordered by question id", func() {
			recs, err := store.Answers(ctx, "s1")
			So(err, ShouldBeNil)
			ids := make([]int, len(recs))
			for i, r := range recs {
				ids[i] = r.QuestionID
			}
			So(ids, ShouldResemble, []int{1, 5, 8})
		})

		Convey("saving the same question again replaces the answer", func() {
			save(8, "No")
			recs, err := store.Answers(ctx, "s1")
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 3)
			So(recs[2].Answer, ShouldEqual, "No")
		})

		Convey("a session without answers reports ErrNoAnswers", func() {
			_, err := store.CreateSession(ctx, "s2")
			So(err, ShouldBeNil)
			_, err = store.Answers(ctx, "s2")
			So(err, ShouldWrap, repository.ErrNoAnswers)
		})
	})
}

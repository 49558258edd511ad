package storage_test

import (
	"context"
	"testing"

	storage "github.com/okian/riddlerush/internal/adapters/storage"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-memory store", t, func() {
		store := storage.NewMemory()

		Convey("When a value is set", func() {
			So(store.Set(ctx, "settings", []byte(`{"sound":true}`)), ShouldBeNil)

			Convey("Then it round-trips", func() {
				v, ok, err := store.Get(ctx, "settings")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(string(v), ShouldEqual, `{"sound":true}`)
			})

			Convey("And removing it makes it absent", func() {
				So(store.Remove(ctx, "settings"), ShouldBeNil)
				_, ok, err := store.Get(ctx, "settings")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When getting an absent key", func() {
			_, ok, err := store.Get(ctx, "missing")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When clearing the namespace", func() {
			So(store.Set(ctx, "a", []byte("1")), ShouldBeNil)
			So(store.Set(ctx, "b", []byte("2")), ShouldBeNil)
			So(store.Clear(ctx), ShouldBeNil)
			So(store.Len(), ShouldEqual, 0)
		})

		Convey("When the stored value is mutated by the caller", func() {
			payload := []byte("abc")
			So(store.Set(ctx, "k", payload), ShouldBeNil)
			payload[0] = 'x'

			Convey("Then the stored copy is unaffected", func() {
				v, _, err := store.Get(ctx, "k")
				So(err, ShouldBeNil)
				So(string(v), ShouldEqual, "abc")
			})
		})
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file-backed store", t, func() {
		dir := t.TempDir()
		store, err := storage.NewFile(dir)
		So(err, ShouldBeNil)

		Convey("When a value is set", func() {
			So(store.Set(ctx, "current_session", []byte(`{"id":"s1"}`)), ShouldBeNil)

			Convey("Then it round-trips", func() {
				v, ok, err := store.Get(ctx, "current_session")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(string(v), ShouldEqual, `{"id":"s1"}`)
			})

			Convey("And a second store over the same directory sees it", func() {
				reopened, err := storage.NewFile(dir)
				So(err, ShouldBeNil)
				v, ok, err := reopened.Get(ctx, "current_session")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(string(v), ShouldEqual, `{"id":"s1"}`)
			})
		})

		Convey("When using a key that would escape the directory", func() {
			err := store.Set(ctx, "../evil", []byte("x"))
			So(err, ShouldNotBeNil)
		})

		Convey("When clearing", func() {
			So(store.Set(ctx, "a", []byte("1")), ShouldBeNil)
			So(store.Set(ctx, "b", []byte("2")), ShouldBeNil)
			So(store.Clear(ctx), ShouldBeNil)
			_, ok, err := store.Get(ctx, "a")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("When constructed without a directory", func() {
			_, err := storage.NewFile("")
			So(err, ShouldEqual, storage.ErrDataRoot)
		})
	})
}

func TestWriteBehind(t *testing.T) {
	ctx := context.Background()

	Convey("Given a write-behind store over memory", t, func() {
		backing := storage.NewMemory()
		store := storage.NewWriteBehind(backing)

		Convey("When writes are enqueued and the store closes", func() {
			So(store.Set(ctx, "k1", []byte("v1")), ShouldBeNil)
			So(store.Set(ctx, "k2", []byte("v2")), ShouldBeNil)
			So(store.Remove(ctx, "k1"), ShouldBeNil)
			So(store.Close(), ShouldBeNil)

			Convey("Then every pending write reached the backing store", func() {
				_, ok, err := backing.Get(ctx, "k1")
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)

				v, ok, err := backing.Get(ctx, "k2")
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(string(v), ShouldEqual, "v2")
			})

			Convey("And writes after close are rejected", func() {
				So(store.Set(ctx, "k3", []byte("v3")), ShouldEqual, storage.ErrClosed)
			})

			Convey("And closing twice is fine", func() {
				So(store.Close(), ShouldBeNil)
			})
		})

		Convey("When the queue is saturated", func() {
			small := storage.NewWriteBehind(backing, storage.WithQueueCapacity(1))

			Convey("Then extra writes are dropped without an error", func() {
				for i := 0; i < 50; i++ {
					So(small.Set(ctx, "k", []byte("v")), ShouldBeNil)
				}
				So(small.Close(), ShouldBeNil)
			})
		})
	})
}

package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/eventease/insights/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				seen := d.SeenAndRecord(context.Background(), "event:1")

				Convey("Then it should return false and record the key", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the key was already seen", func() {
				d.SeenAndRecord(context.Background(), "event:1")
				seen := d.SeenAndRecord(context.Background(), "event:1")

				Convey("Then it should return true without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And multiple keys are recorded", func() {
				keys := []string{"event:1", "event:2", "participant:1", "participant:2"}
				for _, key := range keys {
					So(d.SeenAndRecord(context.Background(), key), ShouldBeFalse)
				}

				Convey("Then all keys stay recorded", func() {
					So(d.Size(), ShouldEqual, int64(len(keys)))
					for _, key := range keys {
						So(d.SeenAndRecord(context.Background(), key), ShouldBeTrue)
					}
				})
			})
		})

		Convey("When unrecording", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(context.Background(), "event:1")

			Convey("And the key exists", func() {
				d.Unrecord(context.Background(), "event:1")

				Convey("Then the key can be recorded again", func() {
					So(d.Size(), ShouldEqual, 0)
					So(d.SeenAndRecord(context.Background(), "event:1"), ShouldBeFalse)
				})
			})

			Convey("And the key does not exist", func() {
				d.Unrecord(context.Background(), "missing")

				Convey("Then nothing changes", func() {
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When the cache exceeds its bound", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

			for i := 0; i < 5; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("event:%d", i))
			}

			Convey("Then the size never exceeds the bound", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("Then the oldest keys were evicted", func() {
				So(d.SeenAndRecord(context.Background(), "event:0"), ShouldBeFalse)
			})

			Convey("Then the newest keys survive", func() {
				So(d.SeenAndRecord(context.Background(), "event:4"), ShouldBeTrue)
			})
		})

		Convey("When unrecorded keys meet eviction", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))

			d.SeenAndRecord(context.Background(), "a")
			d.SeenAndRecord(context.Background(), "b")
			d.Unrecord(context.Background(), "a")
			d.SeenAndRecord(context.Background(), "c")
			d.SeenAndRecord(context.Background(), "d")

			Convey("Then eviction skips the already-removed key", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(context.Background(), "d"), ShouldBeTrue)
			})
		})

		Convey("When accessed concurrently", func() {
			d := dedupe.NewInMemoryDeduper()
			const goroutines = 16
			const perGoroutine = 100

			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						d.SeenAndRecord(context.Background(), fmt.Sprintf("key-%d-%d", g, i))
					}
				}(g)
			}
			wg.Wait()

			Convey("Then every key is recorded exactly once", func() {
				So(d.Size(), ShouldEqual, int64(goroutines*perGoroutine))
			})
		})

		Convey("When the same key races from many goroutines", func() {
			d := dedupe.NewInMemoryDeduper()
			const goroutines = 32

			results := make(chan bool, goroutines)
			var wg sync.WaitGroup
			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					results <- d.SeenAndRecord(context.Background(), "contested")
				}()
			}
			wg.Wait()
			close(results)

			newlyRecorded := 0
			for seen := range results {
				if !seen {
					newlyRecorded++
				}
			}

			Convey("Then exactly one goroutine records it", func() {
				So(newlyRecorded, ShouldEqual, 1)
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}

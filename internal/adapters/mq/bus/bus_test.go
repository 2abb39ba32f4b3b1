package bus_test

import (
	"context"
	"testing"

	busadapter "github.com/ehsandc/Event-App-on-render/internal/adapters/mq/bus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryBus(t *testing.T) {
	Convey("Given a new InMemoryBus", t, func() {
		b := busadapter.NewInMemoryBus()
		ctx := context.Background()

		Convey("When publishing with no subscribers", func() {
			ok := b.Publish(ctx, busadapter.TopicDataChanged)

			Convey("Then the publish succeeds and nothing happens", func() {
				So(ok, ShouldBeTrue)
			})
		})

		Convey("When several handlers subscribe to a topic", func() {
			var order []string
			b.Subscribe(busadapter.TopicDataChanged, func(ctx context.Context, topic busadapter.Topic) {
				order = append(order, "first")
			})
			b.Subscribe(busadapter.TopicDataChanged, func(ctx context.Context, topic busadapter.Topic) {
				order = append(order, "second")
			})

			b.Publish(ctx, busadapter.TopicDataChanged)

			Convey("Then delivery is synchronous and in subscription order", func() {
				So(order, ShouldResemble, []string{"first", "second"})
			})
		})

		Convey("When a handler subscribes to a different topic", func() {
			var fired bool
			b.Subscribe(busadapter.TopicResetFilters, func(ctx context.Context, topic busadapter.Topic) {
				fired = true
			})

			b.Publish(ctx, busadapter.TopicDataChanged)

			Convey("Then it is not invoked", func() {
				So(fired, ShouldBeFalse)
			})
		})

		Convey("When a subscription is removed by token", func() {
			var count int
			token := b.Subscribe(busadapter.TopicDataChanged, func(ctx context.Context, topic busadapter.Topic) {
				count++
			})

			b.Publish(ctx, busadapter.TopicDataChanged)
			b.Unsubscribe(token)
			b.Publish(ctx, busadapter.TopicDataChanged)

			Convey("Then the handler stops receiving", func() {
				So(count, ShouldEqual, 1)
			})
		})

		Convey("When unsubscribing an unknown token", func() {
			b.Unsubscribe("no-such-token")

			Convey("Then nothing breaks", func() {
				So(b.Publish(ctx, busadapter.TopicDataChanged), ShouldBeTrue)
			})
		})

		Convey("When the bus is closed", func() {
			var fired bool
			b.Subscribe(busadapter.TopicDataChanged, func(ctx context.Context, topic busadapter.Topic) {
				fired = true
			})
			So(b.Close(), ShouldBeNil)

			Convey("Then publishes are dropped", func() {
				So(b.Publish(ctx, busadapter.TopicDataChanged), ShouldBeFalse)
				So(fired, ShouldBeFalse)
				So(b.IsClosed(), ShouldBeTrue)
			})

			Convey("Then closing again is a no-op", func() {
				So(b.Close(), ShouldBeNil)
			})
		})
	})
}

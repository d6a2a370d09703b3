// Package observable decorates core command and query handlers with metrics, tracing and logging.
//
//	handler, _ := listbook.NewCommandHandler(store)
//	wrapped, _ := observable.NewCommandWrapper[listbook.Command](
//		handler,
//		observable.WithCommandMetrics[listbook.Command](metrics),
//		observable.WithCommandContextualLogging[listbook.Command](logger),
//	)
package observable

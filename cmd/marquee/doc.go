// Package main hosts the marquee CLI entrypoint and command graph.
//
// The Cobra command tree covers three browsing flows: listing the titles an
// actor appears in, recommending titles similar to one of them, and querying
// the book search API with discount and publisher filters over the cached
// results. Configuration, logging, the store and catalog resolution are
// wired once in commandContext so subcommands only render results.
//
// Keep this package lean: behaviour belongs in the internal packages, and
// commands translate flags into calls and results into tables or JSON.
package main

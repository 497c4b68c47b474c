/*
Package ports defines the driven ports (interfaces) of the pattern generator.

These interfaces decouple generation from the places patterns are kept, so the
same generator can run with an in-process cache, a shared Redis cache or none,
and save its output to a Markdown library.

# Key Interfaces

  - PatternCache: memoizes generated results by request key.
  - PatternLibrary: persists generated patterns as readable documents.
*/
package ports

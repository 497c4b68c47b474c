/*
Package domain contains the core models of the amigurumi pattern generator.

It defines the value objects exchanged between the pattern algorithm and its hosts
(CLI, HTTP, MCP). This package is kept pure and free of external dependencies like
I/O or persistence.

# Key Entities

  - Stitch: geometry and labels of a crochet stitch (width/height ratio, chain count).
  - Catalog: immutable per-request mapping of stitch keys to stitches.
  - Text: an instruction line in abbreviated and descriptive form.
  - Pattern: a title plus the ordered instruction lines of a sphere.
  - Request / Result: what a host asks for and what the generator hands back.
*/
package domain

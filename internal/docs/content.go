package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with smv",
		Content: topicQuickstart,
	},
	{
		Name:    "patterns",
		Title:   "Destination Patterns",
		Summary: "Placeholders, selectors, and offsets",
		Content: topicPatterns,
	},
	{
		Name:    "helpers",
		Title:   "Helper Programs",
		Summary: "How helper output becomes variables",
		Content: topicHelpers,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "The .smv.yaml file, flags, and exit codes",
		Content: topicConfig,
	},
}

const topicQuickstart = `
QUICK START
===========

smv moves files like mv, but builds each destination from a pattern.

  smv [flags] SOURCE_PATTERN DESTINATION_PATTERN

SOURCE_PATTERN is a directory followed by a glob ("photos/*.jpg"). Every
matching entry is renamed to DESTINATION_PATTERN with its placeholders
filled in:

  smv 'photos/*.jpg' 'photos/%0%_old%$%'
  photos/a.jpg >> photos/a_old.jpg

Add a helper to pull data out of each file:

  smv -H 'exiftool -s3 -d "%Y %m" -DateTimeOriginal' -p \
      'photos/*.jpg' 'sorted/%1%/%2%/%0%%$%'

Always try a pattern with --dry-run (-n) first.

Run 'smv docs patterns' for the placeholder syntax.
`

const topicPatterns = `
DESTINATION PATTERNS
====================

A placeholder is text between two delimiters (default '%'). Text outside
placeholders is copied as is. An odd number of delimiters is an error.

Selectors
---------

  %@%     whole helper output
  %1%     first space separated field of the helper output (up to %99%)
  %#%     last field (the whole output if it has no fields)
  %0%     file name without extension
  %$%     extension with its dot (".jpg"), empty when there is none

A numeric selector with no matching field is copied literally: with three
fields, %7% becomes "7". Any other placeholder text is copied literally too.

Offsets
-------

A selector can be followed by ,START or ,START,LENGTH. Both count
characters (Unicode codepoints, not bytes), START from 1:

  %0,1,3%     first three characters of the file name
  %1,5%       the first field from its fifth character to the end
  %@,2,100%   LENGTH past the end is cut to what is left

START of 0, START past the end of the value, or an explicit LENGTH of 0
is a bad pattern. A bad pattern stops the whole run unless
--on-error=skip is set.

Delimiter
---------

Use -d to pick another delimiter when '%' appears in your paths:

  smv -d '+' 'logs/*.log' 'archive/+0+-100%.log'

The delimiter cannot be ',' or a digit.
`

const topicHelpers = `
HELPER PROGRAMS
===============

--helper (-H) names a command that is run once per matched file through
bash, with the file path appended as one quoted argument:

  -H 'stat -c %y'   runs   stat -c %y 'photos/a.jpg'

Only the first line of standard output is used. It becomes %@%, and its
space separated fields become %1%, %2%, ... in order. At most 99 fields
are kept (max-vars) and at most 65536 bytes are read (max-helper-output).

A helper that exits non-zero skips that file; the run continues and exits
with status 2. --helper-timeout kills helpers that run too long.
`

const topicConfig = `
CONFIGURATION REFERENCE
=======================

Flags can be given defaults in .smv.yaml in the working directory, or in
the file named by --config. Flags on the command line win.

  delimiter: "%"            # placeholder delimiter, one character
  helper: ""                # helper command line
  helper-timeout: 0         # seconds, 0 = no limit
  mv-flags: ""              # passed to mv, e.g. "-n" or "-b"
  make-path: false          # create destination directories
  ignore-case: false        # case-insensitive SOURCE_PATTERN
  on-error: abort           # abort | skip, for bad patterns
  max-vars: 100             # variable table size, %@% included
  max-helper-output: 65536  # bytes of helper output kept
  journal: ""               # write a journal usable by 'smv undo'

Exit codes
----------

  0    all files renamed
  1    nothing matched SOURCE_PATTERN
  2    a helper failed
  3    bad pattern
  4    a rename failed
  130  interrupted

Undo
----

With a journal, 'smv undo <journal>' moves every file back, newest first.
`

// Package dupdigest finds duplicate files in a directory tree by content digest.
//
// # Core API
//
// A Finder runs the pipeline: traverse the tree, hash every readable regular
// file, and group the results by digest:
//
//	finder, err := dupdigest.NewFinder(dupdigest.Options{})
//	table, stats := finder.Scan("/path/to/dir")
//
// Groups come back in ascending digest order, and the members of a group in
// ascending path order, so two runs over an unchanged tree agree exactly.
//
// # Reporting
//
//	reporter, _ := dupdigest.NewReporter("text")
//	err = reporter.Write(os.Stdout, table)
//
// The text format prints one line per group: the size of the first member
// followed by every member path, with backslashes and spaces escaped by a
// backslash. ParseGroupLine reverses it.
//
// # Failure handling
//
// Directories that cannot be listed and files that cannot be read are left
// out of the result without an error. Raise the verbose level to see them:
//
//	dupdigest.SetVerboseLevel(2)
//
// # Configuration
//
// LoadConfig reads an optional ini file with [filehash], [performance],
// [symlink], [output], [verbose] and [scan] sections; Config.Options turns it
// into Finder options.
package dupdigest

// Package filekind classifies uploaded file paths: which ones are kept out of
// a project, which ones cannot be shown as text, and which MIME type a stored
// blob is labelled with.
//
// Upload exclusion and the "binary" check used when viewing a file share one
// extension table, so a file that could never be viewed is also never stored.
package filekind

import (
	"path"
	"strings"
)

// Category groups extensions that are not treated as source text.
type Category string

const (
	CategoryNone     Category = ""
	CategoryCompiled Category = "compiled"
	CategoryImage    Category = "image"
	CategoryMedia    Category = "media"
	CategoryArchive  Category = "archive"
	CategoryPackage  Category = "package"
	CategoryDocument Category = "document"
)

var binaryExtensions = map[string]Category{
	"exe": CategoryCompiled, "dll": CategoryCompiled, "so": CategoryCompiled,
	"dylib": CategoryCompiled, "bin": CategoryCompiled, "dat": CategoryCompiled,
	"db": CategoryCompiled, "sqlite": CategoryCompiled, "class": CategoryCompiled,
	"o": CategoryCompiled, "obj": CategoryCompiled, "pyc": CategoryCompiled,
	"wasm": CategoryCompiled,

	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "bmp": CategoryImage, "ico": CategoryImage,
	"webp": CategoryImage, "tiff": CategoryImage,

	"mp3": CategoryMedia, "wav": CategoryMedia, "ogg": CategoryMedia,
	"flac": CategoryMedia, "mp4": CategoryMedia, "avi": CategoryMedia,
	"mov": CategoryMedia, "wmv": CategoryMedia, "mkv": CategoryMedia,
	"webm": CategoryMedia,

	"zip": CategoryArchive, "rar": CategoryArchive, "7z": CategoryArchive,
	"tar": CategoryArchive, "gz": CategoryArchive, "tgz": CategoryArchive,
	"bz2": CategoryArchive, "xz": CategoryArchive,

	"jar": CategoryPackage, "war": CategoryPackage, "deb": CategoryPackage,
	"rpm": CategoryPackage, "apk": CategoryPackage, "msi": CategoryPackage,
	"dmg": CategoryPackage, "iso": CategoryPackage, "whl": CategoryPackage,

	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"xls": CategoryDocument, "xlsx": CategoryDocument, "ppt": CategoryDocument,
	"pptx": CategoryDocument,
}

// Directories whose whole subtree is build output, dependencies or VCS data.
var excludedDirs = map[string]struct{}{
	"node_modules":     {},
	"bower_components": {},
	"dist":             {},
	"build":            {},
	".next":            {},
	".git":             {},
	".svn":             {},
}

// Base names excluded wherever they appear.
var excludedNames = map[string]struct{}{
	".ds_store":      {},
	".gitignore":     {},
	".gitattributes": {},
	".gitmodules":    {},
}

var contentTypes = map[string]string{
	"txt":  "text/plain",
	"js":   "text/javascript",
	"jsx":  "text/javascript",
	"ts":   "text/typescript",
	"tsx":  "text/typescript",
	"json": "application/json",
	"md":   "text/markdown",
	"css":  "text/css",
	"scss": "text/scss",
	"html": "text/html",
	"xml":  "text/xml",
	"yaml": "text/yaml",
	"yml":  "text/yaml",
	"py":   "text/x-python",
	"rb":   "text/x-ruby",
	"php":  "text/x-php",
	"java": "text/x-java",
	"c":    "text/x-c",
	"cpp":  "text/x-c++",
	"go":   "text/x-go",
	"rs":   "text/x-rust",
}

// DefaultContentType labels anything without a known extension.
const DefaultContentType = "text/plain"

// ShouldExclude reports whether a file with this relative path is kept out
// of uploads: it lives under a build, dependency or VCS directory, is a known
// junk or VCS metadata file, or has a binary extension.
func ShouldExclude(name string) bool {
	if name == "" {
		return false
	}

	segments := splitSegments(name)
	last := len(segments) - 1
	for i, seg := range segments {
		lower := strings.ToLower(seg)
		if i < last {
			if IsExcludedDir(seg) {
				return true
			}
			continue
		}
		if _, ok := excludedNames[lower]; ok {
			return true
		}
	}

	return Classify(name) != CategoryNone
}

// IsExcludedDir reports whether a directory with this base name is skipped
// as a whole.
func IsExcludedDir(name string) bool {
	_, ok := excludedDirs[strings.ToLower(name)]
	return ok
}

// IsBinary reports whether the name carries an extension that cannot be
// rendered as text. Directory placement is not considered.
func IsBinary(name string) bool {
	return Classify(name) != CategoryNone
}

// Classify returns the binary category of the name's extension, or
// CategoryNone for text and unknown extensions.
func Classify(name string) Category {
	return binaryExtensions[Extension(name)]
}

// ContentType maps the extension to a MIME label, falling back to
// DefaultContentType.
func ContentType(name string) string {
	if ct, ok := contentTypes[Extension(name)]; ok {
		return ct
	}
	return DefaultContentType
}

// Extension returns the lower-cased text after the last "." of the base
// name, or "" when there is none.
func Extension(name string) string {
	segments := splitSegments(name)
	if len(segments) == 0 {
		return ""
	}
	base := segments[len(segments)-1]

	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// NormalizePath turns a client supplied relative path into the form stored
// in records and blob names: forward slashes, no leading separator, no "."
// or ".." segments. It returns "" when nothing usable is left or the path
// climbs above its root.
func NormalizePath(name string) string {
	p := strings.ReplaceAll(name, `\`, "/")
	p = strings.TrimLeft(p, "/")
	if p == "" {
		return ""
	}

	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return ""
	}
	return p
}

// BlobName is the object key of a project file. Uploading the same relative
// path twice yields the same key.
func BlobName(projectID, filename string) string {
	return projectID + "/" + NormalizePath(filename)
}

func splitSegments(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' })
}

package forensics

import (
	"bytes"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Metadata extracts embedded EXIF tags from the raw file bytes, rendered as
// strings keyed by field name. Best effort: images without metadata, or
// formats without EXIF support, yield an empty map. Never fails.
func Metadata(data []byte) map[string]string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return map[string]string{}
	}
	tags := tagCollector{}
	_ = x.Walk(tags)
	return map[string]string(tags)
}

type tagCollector map[string]string

func (c tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	c[string(name)] = tag.String()
	return nil
}

package villagegraph

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return errors.Wrap(err, "encoding png")
	}
	return errors.Wrapf(os.WriteFile(fpath, buff.Bytes(), 0644), "writing %s", fpath)
}

package proseengine

import (
	"fmt"

	"github.com/proseengine/core/internal/commands"
	"github.com/proseengine/core/internal/model"
)

// InsertImage inserts an image leaf at the cursor.
func (e *Engine) InsertImage(src string, attrs model.Attrs) bool {
	return e.runDispatch(commands.InsertImage(src, attrs), true)
}

// InsertVideo inserts a video leaf at the cursor.
func (e *Engine) InsertVideo(url string, attrs model.Attrs) bool {
	return e.runDispatch(commands.InsertVideo(url, attrs), true)
}

// InsertEmbed inserts an embed leaf at the cursor.
func (e *Engine) InsertEmbed(url string, attrs model.Attrs) bool {
	return e.runDispatch(commands.InsertEmbed(url, attrs), true)
}

// UploadAndInsertImage runs the configured ImageUploader over file and
// inserts the resulting image. Returns an error if no uploader is configured
// or the upload itself fails.
func (e *Engine) UploadAndInsertImage(file []byte) error {
	if e.opts.ImageUpload == nil {
		return fmt.Errorf("proseengine: no ImageUpload configured")
	}
	result, err := e.opts.ImageUpload(file)
	if err != nil {
		return err
	}
	attrs := model.Attrs{}
	if result.Alt != "" {
		attrs["alt"] = result.Alt
	}
	if result.Width != 0 {
		attrs["width"] = result.Width
	}
	if result.Height != 0 {
		attrs["height"] = result.Height
	}
	e.InsertImage(result.Src, attrs)
	return nil
}

// SetMediaAlignment sets the "align" attr on the selected media.
func (e *Engine) SetMediaAlignment(value string) bool {
	return e.runDispatch(commands.SetMediaAlignment(value), true)
}

// SetImageAlt sets the selected image's alt text.
func (e *Engine) SetImageAlt(alt string) bool {
	return e.runDispatch(commands.SetImageAlt(alt), true)
}

// SetImageCaption sets the selected media node's caption.
func (e *Engine) SetImageCaption(caption string) bool {
	return e.runDispatch(commands.SetImageCaption(caption), true)
}

// UpdateMediaAttrs merges patch into the selected media node's attrs.
func (e *Engine) UpdateMediaAttrs(patch model.Attrs) bool {
	return e.runDispatch(commands.UpdateMediaAttrs(patch), true)
}

// DeleteMedia removes the selected media node.
func (e *Engine) DeleteMedia() bool {
	return e.runDispatch(commands.DeleteMedia, true)
}

// GetSelectedMedia finds the media node the cursor sits on or just before.
func (e *Engine) GetSelectedMedia() (commands.SelectedMedia, bool) {
	return commands.GetSelectedMedia(e.current)
}

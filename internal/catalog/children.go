package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/models"
)

// productChildren holds the validated child collections of one write. A nil
// slice means the kind was not supplied and must not be touched.
type productChildren struct {
	images []models.ProductImage
	videos []models.ProductVideo
	colors []models.ProductColor
	sizes  []models.ProductSize
	styles []models.ProductStyle
}

func childrenFromInput(in models.ProductInput) (productChildren, error) {
	var ch productChildren
	fields := map[string]string{}

	if in.Images != nil {
		ch.images = make([]models.ProductImage, 0, len(*in.Images))
		for i, img := range *in.Images {
			url := strings.TrimSpace(img.URL)
			if err := checkChildText(url, 1000); err != "" {
				fields[fmt.Sprintf("images[%d].url", i)] = err
				continue
			}
			ch.images = append(ch.images, models.ProductImage{URL: url})
		}
	}
	if in.Videos != nil {
		ch.videos = make([]models.ProductVideo, 0, len(*in.Videos))
		for i, v := range *in.Videos {
			url := strings.TrimSpace(v.URL)
			if err := checkChildText(url, 1000); err != "" {
				fields[fmt.Sprintf("videos[%d].url", i)] = err
				continue
			}
			ch.videos = append(ch.videos, models.ProductVideo{URL: url})
		}
	}
	if in.Colors != nil {
		ch.colors = make([]models.ProductColor, 0, len(*in.Colors))
		for i, c := range *in.Colors {
			name := strings.TrimSpace(c.Name)
			if err := checkChildText(name, 50); err != "" {
				fields[fmt.Sprintf("colors[%d].name", i)] = err
				continue
			}
			ch.colors = append(ch.colors, models.ProductColor{Name: name, Image: strings.TrimSpace(c.Image)})
		}
	}
	if in.Sizes != nil {
		ch.sizes = make([]models.ProductSize, 0, len(*in.Sizes))
		for i, s := range *in.Sizes {
			name := strings.TrimSpace(s)
			if err := checkChildText(name, 50); err != "" {
				fields[fmt.Sprintf("sizes[%d]", i)] = err
				continue
			}
			ch.sizes = append(ch.sizes, models.ProductSize{Name: name})
		}
	}
	if in.Styles != nil {
		ch.styles = make([]models.ProductStyle, 0, len(*in.Styles))
		for i, st := range *in.Styles {
			name := strings.TrimSpace(st.Name)
			if err := checkChildText(name, 100); err != "" {
				fields[fmt.Sprintf("styles[%d].name", i)] = err
				continue
			}
			options := st.Options
			if options == nil {
				options = []string{}
			}
			ch.styles = append(ch.styles, models.ProductStyle{Name: name, Options: options})
		}
	}

	if len(fields) > 0 {
		return productChildren{}, apperr.FieldErrors(fields)
	}
	return ch, nil
}

func checkChildText(v string, max int) string {
	switch {
	case v == "":
		return requiredMsg
	case len(v) > max:
		return fmt.Sprintf("Ensure this field has no more than %d characters.", max)
	}
	return ""
}

// write replaces every supplied kind for productID.
func (ch productChildren) write(ctx context.Context, w ProductWriter, productID int64) error {
	if ch.images != nil {
		if err := w.ReplaceProductImages(ctx, productID, ch.images); err != nil {
			return err
		}
	}
	if ch.videos != nil {
		if err := w.ReplaceProductVideos(ctx, productID, ch.videos); err != nil {
			return err
		}
	}
	if ch.colors != nil {
		if err := w.ReplaceProductColors(ctx, productID, ch.colors); err != nil {
			return err
		}
	}
	if ch.sizes != nil {
		if err := w.ReplaceProductSizes(ctx, productID, ch.sizes); err != nil {
			return err
		}
	}
	if ch.styles != nil {
		if err := w.ReplaceProductStyles(ctx, productID, ch.styles); err != nil {
			return err
		}
	}
	return nil
}

func (ch productChildren) kinds() []string {
	var kinds []string
	if ch.images != nil {
		kinds = append(kinds, "images")
	}
	if ch.videos != nil {
		kinds = append(kinds, "videos")
	}
	if ch.colors != nil {
		kinds = append(kinds, "colors")
	}
	if ch.sizes != nil {
		kinds = append(kinds, "sizes")
	}
	if ch.styles != nil {
		kinds = append(kinds, "styles")
	}
	return kinds
}

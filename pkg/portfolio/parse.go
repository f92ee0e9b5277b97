package portfolio

import "fmt"

// parsePhotoProject validates a photoProject entry. A missing images field
// is an empty project; the delivery API omits empty lists.
func parsePhotoProject(e Entry) (PhotoProject, error) {
	title, err := stringField(e, "title", true)
	if err != nil {
		return PhotoProject{}, err
	}

	images := []string{}
	raw, ok := e.Fields["images"]
	if ok && raw != nil {
		assets, err := assetListField(e, "images", raw)
		if err != nil {
			return PhotoProject{}, err
		}
		for i, a := range assets {
			u, err := NormalizeAssetURL(a.FileURL)
			if err != nil {
				return PhotoProject{}, entryError(e, fmt.Sprintf("images[%d]", i), err)
			}
			images = append(images, u)
		}
	}

	return PhotoProject{Title: title, Images: images}, nil
}

// parseVideoProject validates a videoProject entry.
func parseVideoProject(e Entry) (VideoProject, error) {
	title, err := stringField(e, "title", false)
	if err != nil {
		return VideoProject{}, err
	}
	src, err := assetURLField(e, "video")
	if err != nil {
		return VideoProject{}, err
	}
	poster, err := assetURLField(e, "poster")
	if err != nil {
		return VideoProject{}, err
	}
	return VideoProject{Title: title, Src: src, Poster: poster}, nil
}

func stringField(e Entry, name string, nonEmpty bool) (string, error) {
	raw, ok := e.Fields[name]
	if !ok || raw == nil {
		return "", entryError(e, name, ErrMissingField)
	}
	s, ok := raw.(string)
	if !ok {
		return "", entryError(e, name, fmt.Errorf("%w: want string, got %T", ErrInvalidField, raw))
	}
	if nonEmpty && s == "" {
		return "", entryError(e, name, fmt.Errorf("%w: empty string", ErrInvalidField))
	}
	return s, nil
}

func assetURLField(e Entry, name string) (string, error) {
	raw, ok := e.Fields[name]
	if !ok || raw == nil {
		return "", entryError(e, name, ErrMissingField)
	}
	a, err := asAsset(raw)
	if err != nil {
		return "", entryError(e, name, err)
	}
	u, err := NormalizeAssetURL(a.FileURL)
	if err != nil {
		return "", entryError(e, name, err)
	}
	return u, nil
}

func assetListField(e Entry, name string, raw any) ([]Asset, error) {
	switch v := raw.(type) {
	case []Asset:
		return v, nil
	case []any:
		assets := make([]Asset, 0, len(v))
		for i, item := range v {
			a, err := asAsset(item)
			if err != nil {
				return nil, entryError(e, fmt.Sprintf("%s[%d]", name, i), err)
			}
			assets = append(assets, a)
		}
		return assets, nil
	default:
		return nil, entryError(e, name, fmt.Errorf("%w: want asset list, got %T", ErrInvalidField, raw))
	}
}

func asAsset(raw any) (Asset, error) {
	switch v := raw.(type) {
	case Asset:
		return v, nil
	case *Asset:
		if v == nil {
			return Asset{}, ErrMissingField
		}
		return *v, nil
	case Link:
		return Asset{}, fmt.Errorf("%w: %s %s", ErrUnresolvedLink, v.LinkType, v.ID)
	default:
		return Asset{}, fmt.Errorf("%w: want asset, got %T", ErrInvalidField, raw)
	}
}

func entryError(e Entry, field string, err error) error {
	return &EntryError{EntryID: e.ID, ContentType: e.ContentType, Field: field, Err: err}
}

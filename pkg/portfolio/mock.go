package portfolio

// mockBundle is the content shown when no source is configured or the
// source cannot be reached. Paths are served by the local asset store.
var mockBundle = ContentBundle{
	PhotoProjects: []PhotoProject{
		{
			Title: "Project A",
			Images: []string{
				"/images/project-a/1.jpg",
				"/images/project-a/2.jpg",
				"/images/project-a/3.jpg",
			},
		},
		{
			Title: "Project B",
			Images: []string{
				"/images/project-b/4.jpg",
				"/images/project-b/5.jpg",
				"/images/project-b/6.jpg",
			},
		},
		{
			Title:  "Project C",
			Images: []string{"/images/project-c/7.jpg", "/images/project-c/8.jpg"},
		},
	},
	VideoProjects: []VideoProject{
		{Title: "Video A", Src: "/videos/video-a.mp4", Poster: "/images/video-a/1.jpg"},
		{Title: "Video B", Src: "/videos/video-b.mp4", Poster: "/images/video-b/1.jpg"},
		{Title: "Video C", Src: "/videos/video-c.mp4", Poster: "/images/video-c/1.jpg"},
	},
}

// MockBundle returns a copy of the fixed fallback content.
func MockBundle() ContentBundle {
	photos := make([]PhotoProject, len(mockBundle.PhotoProjects))
	for i, p := range mockBundle.PhotoProjects {
		photos[i] = PhotoProject{
			Title:  p.Title,
			Images: append([]string(nil), p.Images...),
		}
	}
	videos := append([]VideoProject(nil), mockBundle.VideoProjects...)
	return ContentBundle{PhotoProjects: photos, VideoProjects: videos}
}

package model

const (
	HomePath    = "/"
	CreatePath  = "/create"
	GalleryPath = "/gallery"
)

func DetailPath(id string) string {
	return "/crewmate/" + id
}

func EditPath(id string) string {
	return "/edit/" + id
}

package dto

import (
	"io"
	"mime/multipart"
)

// File 一个待上传的二进制文件
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

func FromFileHeader(fh *multipart.FileHeader) File {
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func FromFileHeaders(fhs []*multipart.FileHeader) []File {
	if len(fhs) == 0 {
		return nil
	}
	files := make([]File, 0, len(fhs))
	for _, fh := range fhs {
		files = append(files, FromFileHeader(fh))
	}
	return files
}

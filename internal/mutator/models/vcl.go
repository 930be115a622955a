package models

// DefaultVCLName is the name the uploaded VCL is stored under.
const DefaultVCLName = "main"

// VCL describes custom VCL to upload.
type VCL struct {
	// Location is a local path, file:// URI or http(s):// URL to read content from.
	Location string
	// Name is the VCL object name on the service version.
	Name string
}

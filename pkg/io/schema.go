package io

// File-level types shared by the YAML and JSON decoders.

type sceneFile struct {
	Render    renderFile     `yaml:"render" json:"render"`
	Camera    *cameraFile    `yaml:"camera" json:"camera"`
	Materials []materialFile `yaml:"materials" json:"materials"`
	Objects   []objectFile   `yaml:"objects" json:"objects"`
}

type renderFile struct {
	Engine  string `yaml:"engine" json:"engine"`
	Samples int    `yaml:"samples" json:"samples"`
	Width   int    `yaml:"width" json:"width"`
	Height  int    `yaml:"height" json:"height"`
}

type cameraFile struct {
	Name        string      `yaml:"name" json:"name"`
	Angle       float64     `yaml:"angle" json:"angle"`
	MatrixWorld [][]float64 `yaml:"matrix_world" json:"matrix_world"`
}

type materialFile struct {
	Name     string     `yaml:"name" json:"name"`
	UseNodes bool       `yaml:"use_nodes" json:"use_nodes"`
	Nodes    []nodeFile `yaml:"nodes" json:"nodes"`
}

type nodeFile struct {
	Name   string       `yaml:"name" json:"name"`
	Kind   string       `yaml:"kind" json:"kind"`
	Inputs []socketFile `yaml:"inputs" json:"inputs"`
	Image  *imageFile   `yaml:"image" json:"image"`
}

type socketFile struct {
	Name    string     `yaml:"name" json:"name"`
	Type    string     `yaml:"type" json:"type"`
	Default any        `yaml:"default" json:"default"`
	Links   []linkFile `yaml:"links" json:"links"`
}

type linkFile struct {
	From   string `yaml:"from" json:"from"`
	Socket string `yaml:"socket" json:"socket"`
}

type imageFile struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
	Data string `yaml:"data" json:"data"`
}

type objectFile struct {
	Name        string      `yaml:"name" json:"name"`
	Type        string      `yaml:"type" json:"type"`
	MatrixWorld [][]float64 `yaml:"matrix_world" json:"matrix_world"`
	Location    []float64   `yaml:"location" json:"location"`
	Mesh        *meshFile   `yaml:"mesh" json:"mesh"`
	Light       *lightFile  `yaml:"light" json:"light"`
}

type meshFile struct {
	Vertices  [][]float64 `yaml:"vertices" json:"vertices"`
	UVs       [][]float64 `yaml:"uvs" json:"uvs"`
	Faces     []faceFile  `yaml:"faces" json:"faces"`
	Materials []string    `yaml:"materials" json:"materials"`
}

type faceFile struct {
	Vertices []int `yaml:"vertices" json:"vertices"`
	UV       []int `yaml:"uv" json:"uv"`
	Material int   `yaml:"material" json:"material"`
}

type lightFile struct {
	Type      string    `yaml:"type" json:"type"`
	Color     []float64 `yaml:"color" json:"color"`
	Energy    float64   `yaml:"energy" json:"energy"`
	Normalize bool      `yaml:"normalize" json:"normalize"`
}

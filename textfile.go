package fsusage

import (
	"github.com/prometheus/client_golang/prometheus"
)

var fsLabels = []string{"device", "mountpoint", "fstype"}

// Metrics holds one gauge per counter for every reported mount, ready to be
// written in the node_exporter textfile format.
type Metrics struct {
	registry *prometheus.Registry

	size      *prometheus.GaugeVec
	free      *prometheus.GaugeVec
	avail     *prometheus.GaugeVec
	files     *prometheus.GaugeVec
	filesFree *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fsusage_size_bytes",
			Help: "Filesystem size in bytes"},
			fsLabels),
		free: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fsusage_free_bytes",
			Help: "Filesystem free space in bytes"},
			fsLabels),
		avail: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fsusage_avail_bytes",
			Help: "Filesystem space available to unprivileged users in bytes"},
			fsLabels),
		files: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fsusage_files",
			Help: "Filesystem total file nodes"},
			fsLabels),
		filesFree: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fsusage_files_free",
			Help: "Filesystem free file nodes"},
			fsLabels),
	}
	m.registry.MustRegister(m.size, m.free, m.avail, m.files, m.filesFree)
	return m
}

func (m *Metrics) Observe(fs FileSystem, usage FileSystemUsage) {
	labels := prometheus.Labels{
		"device":     fs.DevName,
		"mountpoint": fs.DirName,
		"fstype":     fs.TypeName,
	}
	m.size.With(labels).Set(float64(usage.Total) * float64(usage.BlockSize))
	m.free.With(labels).Set(float64(usage.Free) * float64(usage.BlockSize))
	m.avail.With(labels).Set(float64(usage.Avail) * float64(usage.BlockSize))
	m.files.With(labels).Set(float64(usage.Files))
	m.filesFree.With(labels).Set(float64(usage.FreeFiles))
}

// WriteTextfile atomically replaces path with the current metric values.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

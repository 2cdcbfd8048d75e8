// Package viz renders simulation output for the terminal.
//
//   - [WriteParams], [WriteFrequencies], [WriteFinalStats]: the console report
//     printed around a run
//   - [WriteModes]: modal analysis table
//   - [Plot], [PlotSamples]: asciigraph time-history charts
//   - [SparklineChart], [ProgressBar]: compact widgets used by the live view
package viz

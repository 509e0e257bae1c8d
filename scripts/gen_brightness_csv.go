package main

import (
	"encoding/csv"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// Generates a synthetic brightness_data.csv record log: a week of ambient
// readings following a day/night cycle, with occasional manual brightness
// adjustments roughly proportional to the ambient level.
func main() {
	days := flag.Int("days", 7, "Number of days of history to generate")
	interval := flag.Int("interval", 600, "Seconds between observations")
	output := flag.String("output", "brightness_data.csv", "Output CSV file path")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	file, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"timestamp", "ambient_light", "screen_brightness", "is_manual_adjustment"})

	end := time.Now().Unix()
	start := end - int64(*days)*24*3600

	count := 0
	for ts := start; ts < end; ts += int64(*interval) {
		hour := time.Unix(ts, 0).Hour()

		// Ambient follows a sine bump peaking mid-day, plus noise.
		phase := (float64(hour) - 6.0) / 12.0
		ambient := 0.0
		if phase > 0 && phase < 1 {
			ambient = 1800 * math.Sin(phase*math.Pi)
		}
		ambient += 50 + rng.Float64()*100
		if ambient < 0 {
			ambient = 0
		}

		// Roughly one in ten samples is a manual adjustment.
		manual := rng.Intn(10) == 0
		brightness := int(ambient/20) + rng.Intn(10)
		if brightness > 100 {
			brightness = 100
		}

		manualFlag := "0"
		if manual {
			manualFlag = "1"
		}
		writer.Write([]string{
			strconv.FormatInt(ts, 10),
			strconv.Itoa(int(ambient)),
			strconv.Itoa(brightness),
			manualFlag,
		})
		count++
	}

	log.Printf("Wrote %d observations to %s", count, *output)
}

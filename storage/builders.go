package storage

import "github.com/tetratelabs/smny/api"

// ota1PartitionLabel is the ESP-IDF convention label for the second OTA
// slot. No ESP-IDF Go binding exists to look this constant up from, so it
// is a plain string the *_OTA1 builders pass to the caller-supplied HAL;
// wiring it to an actual partition table remains the caller's job.
const ota1PartitionLabel = "ota_1"

// BufferedStoreFromHAL composes flash into an api.ModuleSource that copies
// the whole region into RAM once, at Open time, then serves reads from
// that copy. Use this when holding the flash mapping itself isn't possible
// (HAL callback flash) and repeated re-reads during decoding would be
// wasteful or when the HAL can't tolerate overlapping calls.
func BufferedStoreFromHAL(flash api.FlashIo) api.ModuleSource {
	return &bufferedSource{flash: flash, size: flash.Capacity()}
}

// OnDemandStoreFromHAL composes flash into an api.ModuleSource that never
// buffers: every read is forwarded straight to flash.Read. Use this when
// RAM is too tight to hold a second copy of the manifest.
func OnDemandStoreFromHAL(flash api.FlashIo) api.ModuleSource {
	return rangeSource{flash: flash, size: flash.Capacity()}
}

// BufferedStoreOTA1 is BufferedStoreFromHAL defaulting to the ESP-IDF OTA
// slot 1 partition label; newFlash is called with ota1PartitionLabel to
// construct the backing api.FlashIo (typically a thin wrapper the caller
// provides over esp_partition_find/esp_partition_read/esp_partition_write).
func BufferedStoreOTA1(newFlash func(partitionLabel string) api.FlashIo) api.ModuleSource {
	return BufferedStoreFromHAL(newFlash(ota1PartitionLabel))
}

// OnDemandStoreOTA1 is OnDemandStoreFromHAL defaulting to the ESP-IDF OTA
// slot 1 partition label.
func OnDemandStoreOTA1(newFlash func(partitionLabel string) api.FlashIo) api.ModuleSource {
	return OnDemandStoreFromHAL(newFlash(ota1PartitionLabel))
}

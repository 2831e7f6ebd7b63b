// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package archive

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/zstd"
)

func TestZstdDecodeFunc(t *testing.T) {
	t.Parallel()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter: %v", err)
	}
	want := []byte("<page><title>April</title></page>")
	frame := enc.EncodeAll(want, nil)

	t.Run("shared", func(t *testing.T) {
		t.Parallel()

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := decodeZstd(frame)
				if err != nil {
					t.Errorf("decodeZstd: %v", err)
					return
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("decodeZstd (-want, +got):\n%s", diff)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("bad decoder options", func(t *testing.T) {
		t.Parallel()

		decode := zstdDecodeFunc(zstd.WithDecoderMaxMemory(0))
		for range 2 {
			if _, err := decode(frame); err == nil {
				t.Fatal("expected error creating decoder")
			}
		}
	})
}

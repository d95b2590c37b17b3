package services_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	domainerrors "github.com/rafabene/blog-backend/internal/domain/errors"
	"github.com/rafabene/blog-backend/internal/services"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func pngFile(name string) *services.ImageFile {
	return &services.ImageFile{Filename: name, Size: int64(len(pngHeader)), Content: bytes.NewReader(pngHeader)}
}

var _ = Describe("UploadService", func() {
	var env *testEnv

	BeforeEach(func() {
		env = newTestEnv()
	})

	It("publica imagens na pasta de destaque com a extensão detectada", func() {
		url, err := env.upload.UploadFeaturedImage(env.ctx, pngFile("cover.jpeg"))
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(MatchRegexp(`^https://cdn\.test/featured/[0-9a-f-]{36}\.png$`))
		Expect(env.store.keys).To(HaveLen(1))
	})

	It("rejeita arquivo ausente ou vazio", func() {
		_, err := env.upload.UploadFeaturedImage(env.ctx, nil)
		Expect(err).To(MatchError(domainerrors.ErrNoFileUploaded))

		_, err = env.upload.UploadFeaturedImage(env.ctx, &services.ImageFile{Filename: "a.png", Size: 0, Content: bytes.NewReader(nil)})
		Expect(err).To(MatchError(domainerrors.ErrNoFileUploaded))
	})

	It("rejeita arquivos que não são imagens", func() {
		text := []byte("just some text")
		_, err := env.upload.UploadFeaturedImage(env.ctx, &services.ImageFile{
			Filename: "fake.png", Size: int64(len(text)), Content: bytes.NewReader(text),
		})
		Expect(err).To(MatchError(domainerrors.ErrNotAnImage))
		Expect(env.store.keys).To(BeEmpty())
	})

	It("rejeita arquivos acima do limite", func() {
		big := append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...)

		_, err := env.upload.UploadFeaturedImage(env.ctx, &services.ImageFile{
			Filename: "big.png", Size: int64(len(big)), Content: bytes.NewReader(big),
		})
		Expect(err).To(MatchError(domainerrors.ErrFileTooLarge))

		// tamanho declarado menor que o conteúdo real
		_, err = env.upload.UploadFeaturedImage(env.ctx, &services.ImageFile{
			Filename: "big.png", Size: 10, Content: bytes.NewReader(big),
		})
		Expect(err).To(MatchError(domainerrors.ErrFileTooLarge))
	})

	It("converte falha do image store", func() {
		env.store.err = errProviderDown

		_, err := env.upload.UploadAvatar(env.ctx, pngFile("me.png"))
		Expect(err).To(MatchError(domainerrors.ErrUploadFailed))
	})
})

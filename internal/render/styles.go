package render

import "html/template"

// notificationStyles are the per-kind banner style blocks, keyed by the
// marker the controller registers.
var notificationStyles = map[string]template.CSS{
	"error-notification-styles": `
.error-notification{position:fixed;top:100px;right:20px;background:linear-gradient(135deg,#ef4444,#dc2626);color:white;padding:1rem 1.5rem;border-radius:12px;box-shadow:0 4px 15px rgba(239,68,68,.3);display:flex;align-items:center;gap:.75rem;z-index:9999;animation:slideIn .3s ease;max-width:400px}
.error-notification button{background:none;border:none;color:white;cursor:pointer;padding:.25rem;border-radius:4px;transition:background .3s ease}
.error-notification button:hover{background:rgba(255,255,255,.2)}
@keyframes slideIn{from{transform:translateX(100%);opacity:0}to{transform:translateX(0);opacity:1}}`,
	"success-notification-styles": `
.success-notification{position:fixed;top:100px;right:20px;background:linear-gradient(135deg,#22c55e,#16a34a);color:white;padding:1rem 1.5rem;border-radius:12px;box-shadow:0 4px 15px rgba(34,197,94,.3);display:flex;align-items:center;gap:.75rem;z-index:9999;animation:slideIn .3s ease;max-width:400px}
.success-notification button{background:none;border:none;color:white;cursor:pointer;padding:.25rem;border-radius:4px;transition:background .3s ease}
.success-notification button:hover{background:rgba(255,255,255,.2)}`,
}

const trainingOverlayStyles template.CSS = `
#training-overlay{position:fixed;inset:0;background:rgba(0,0,0,.8);backdrop-filter:blur(5px);display:flex;align-items:center;justify-content:center;z-index:10000}
.training-content{background:white;padding:3rem;border-radius:20px;text-align:center;max-width:400px}
.training-spinner{width:60px;height:60px;border:4px solid #f3f4f6;border-top:4px solid #3b82f6;border-radius:50%;animation:spin 1s linear infinite;margin:0 auto 1.5rem}
.training-progress{width:100%;height:6px;background:#f3f4f6;border-radius:3px;overflow:hidden;margin-top:1rem}
.progress-bar{height:100%;background:linear-gradient(135deg,#3b82f6,#1d4ed8);width:0%;animation:progress 30s linear infinite}
@keyframes progress{from{width:0%}to{width:100%}}`
